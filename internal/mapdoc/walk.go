package mapdoc

import (
	"iter"

	"github.com/beevik/etree"
)

// First returns the first child element of parent with the given tag, or nil.
func First(parent *etree.Element, tag string) *etree.Element {
	if parent == nil {
		return nil
	}
	return parent.SelectElement(tag)
}

// Children yields the child elements of parent whose tag equals tag, in
// document order. A nil parent or a parent without matches yields nothing.
// The sequence is restartable: each range re-reads the element tree.
func Children(parent *etree.Element, tag string) iter.Seq[*etree.Element] {
	return func(yield func(*etree.Element) bool) {
		if parent == nil {
			return
		}
		for _, child := range parent.ChildElements() {
			if child.Tag != tag {
				continue
			}
			if !yield(child) {
				return
			}
		}
	}
}

// Siblings yields first followed by every later sibling element, whatever
// its tag. A nil first yields nothing.
func Siblings(first *etree.Element) iter.Seq[*etree.Element] {
	return func(yield func(*etree.Element) bool) {
		if first == nil {
			return
		}
		parent := first.Parent()
		if parent == nil {
			yield(first)
			return
		}
		for _, tok := range parent.Child[first.Index():] {
			el, ok := tok.(*etree.Element)
			if !ok {
				continue
			}
			if !yield(el) {
				return
			}
		}
	}
}

// Count returns the number of elements a sequence yields.
func Count(seq iter.Seq[*etree.Element]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}
