package recovery

import "github.com/gogpu/tex2d/render"

// orderNode is a node in the insertion-order list.
// The node stores the handle for O(1) deletion from the parent map.
type orderNode struct {
	handle render.Handle
	prev   *orderNode
	next   *orderNode
}

// orderList is a doubly-linked list of handles in insertion order.
// The list is not thread-safe; Cache holds its mutex around every call.
//
// The head is the oldest entry, tail the newest.
type orderList struct {
	head *orderNode
	tail *orderNode
	len  int
}

// PushBack appends a handle and returns its node.
func (l *orderList) PushBack(h render.Handle) *orderNode {
	node := &orderNode{handle: h}
	if l.tail == nil {
		l.head = node
		l.tail = node
	} else {
		node.prev = l.tail
		l.tail.next = node
		l.tail = node
	}
	l.len++
	return node
}

// Remove unlinks a node from the list.
func (l *orderList) Remove(node *orderNode) {
	if node == nil {
		return
	}
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
	l.len--
}

// Len returns the number of nodes.
func (l *orderList) Len() int {
	return l.len
}

// Handles returns all handles from oldest to newest.
func (l *orderList) Handles() []render.Handle {
	out := make([]render.Handle, 0, l.len)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.handle)
	}
	return out
}

// Clear removes all nodes.
func (l *orderList) Clear() {
	l.head = nil
	l.tail = nil
	l.len = 0
}
