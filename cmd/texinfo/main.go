// Command texinfo builds textures from image files and prints their layout.
//
// Usage:
//
//	texinfo [-config tex2d.toml] [-format RGBA4444] [-npot] [-reload] image...
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/tex2d"
	"github.com/gogpu/tex2d/imageio"
	"github.com/gogpu/tex2d/pixel"
	"github.com/gogpu/tex2d/render"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		format     = flag.String("format", "", "default pixel format for images with alpha")
		npot       = flag.Bool("npot", false, "assume a device with NPOT texture support")
		maxSize    = flag.Int("max", 0, "maximum texture dimension (0 = device default)")
		reload     = flag.Bool("reload", false, "simulate a context loss and reload all textures")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("usage: texinfo [flags] image...")
	}
	if *verbose {
		tex2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := tex2d.DefaultFileConfig()
	if *configPath != "" {
		var err error
		if cfg, err = tex2d.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *format != "" {
		f, err := pixel.ParseFormat(*format)
		if err != nil {
			log.Fatalf("Invalid format: %v", err)
		}
		cfg.DefaultAlphaFormat = f
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var npotFlag *bool
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "npot" {
			npotFlag = npot
		}
	})

	m := tex2d.NewManager(managerOptions(cfg, npotFlag, *maxSize)...)
	defer m.Close()

	p := message.NewPrinter(language.English)
	for _, path := range flag.Args() {
		src, err := imageio.LoadImage(path)
		if err != nil {
			log.Printf("%s: %v", path, err)
			continue
		}
		tex, err := m.NewTextureFromStdImage(src)
		if err != nil {
			log.Printf("%s: %v", path, err)
			continue
		}
		b := src.Bounds()
		bytes := tex.PixelFormat().ImageBytes(tex.PixelsWide(), tex.PixelsHigh())
		p.Printf("%s: %dx%d image\n", path, b.Dx(), b.Dy())
		p.Printf("  %s\n", tex)
		p.Printf("  format %s, %d bytes, premultiplied %t, sampler %s\n",
			tex.PixelFormat(), bytes, tex.HasPremultipliedAlpha(), tex.TexParameters())
	}

	if cache := m.RecoveryCache(); cache != nil {
		p.Printf("recovery cache: %d textures, %d bytes\n", cache.Len(), cache.Bytes())
	}

	if *reload {
		report, err := m.ReloadAllTextures()
		if err != nil {
			log.Fatalf("Reload failed: %v", err)
		}
		p.Printf("reloaded %d of %d textures\n", report.Recovered, report.Attempted)
		if err := report.Err(); err != nil {
			log.Printf("Reload errors: %v", err)
		}
	}
}

// managerOptions returns the Manager options of cfg followed by the device
// capabilities. The -npot and -max flags override the file; npot is nil when
// the flag was not given.
func managerOptions(cfg tex2d.FileConfig, npot *bool, maxSize int) []tex2d.ManagerOption {
	caps := render.DefaultCapabilities()
	if cfg.MaxTextureSize > 0 {
		caps.NonPowerOfTwo = cfg.AllowNPOT
		caps.MaxTextureSize = cfg.MaxTextureSize
	}
	if npot != nil {
		caps.NonPowerOfTwo = *npot
	}
	if maxSize > 0 {
		caps.MaxTextureSize = maxSize
	}
	return append(cfg.Options(), tex2d.WithCapabilities(caps))
}
