package sortable

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/dragsort/pkg/dom"
	"github.com/matzehuels/dragsort/pkg/dom/memdom"
	"github.com/matzehuels/dragsort/pkg/geom"
)

var cell = geom.Size{Width: 100, Height: 100}

func newDoc() *memdom.Document {
	return memdom.NewDocument(geom.Size{Width: 800, Height: 600})
}

// newList creates a positioned parent holding only a sentinel.
func newList(doc *memdom.Document, name string, at geom.Position, size geom.Size, flow memdom.Flow) (parent, sentinel *memdom.Element) {
	parent = doc.NewElement(name, size)
	parent.SetPosition(at)
	parent.SetFlow(flow)
	doc.Body().AppendChild(parent)
	sentinel = doc.NewElement(name+"-sentinel", geom.Size{})
	parent.AppendChild(sentinel)
	return parent, sentinel
}

// boxes renders every item as a plain element of the given size.
func boxes[T comparable](doc *memdom.Document, size geom.Size) RenderFunc[T] {
	return func(p ItemProps[T]) []dom.Element {
		return []dom.Element{doc.NewElement(fmt.Sprint(p.Item), size)}
	}
}

func elementOf[T comparable](t *testing.T, c *Container[T], item T) *memdom.Element {
	t.Helper()
	el, ok := c.Element(item)
	if !ok {
		t.Fatalf("no element for %v", item)
	}
	return el.(*memdom.Element)
}

func mustMount[T comparable](t *testing.T, c *Container[T], sentinel dom.Element) {
	t.Helper()
	if err := c.Mount(sentinel); err != nil {
		t.Fatalf("Mount() error: %v", err)
	}
}

// recorder collects callback invocations as strings.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}
