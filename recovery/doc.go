// Package recovery keeps the texel data of uploaded textures so they can be
// uploaded again after the graphics context is lost.
//
// Every successful upload is recorded under its texture handle with a
// private copy of the buffer. RecoverAll replays the records in insertion
// order through an upload function. Records made while a replay is running
// are ignored, and a second RecoverAll fails with ErrReloading.
package recovery
