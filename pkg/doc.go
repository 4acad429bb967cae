// Package pkg holds the dragsort libraries.
//
// # Overview
//
// dragsort turns the children of an element into a list that the user
// reorders by dragging, and lets items move between lists that share a
// group. The libraries are layered leaves first:
//
//  1. [geom], [ease] - rectangles, coordinate spaces and timing curves
//  2. [signal] - reactive state, effects and scopes
//  3. [dom] - the host interfaces, with [dom/memdom] (in memory) and
//     [dom/termhost] (a bubbletea terminal) as hosts
//  4. [anim] - the frame scheduler that animates items into their new places
//  5. [layout] - flow grid, horizontal and vertical layouts and index checks
//  6. [sortable] - containers, groups and the drag engine
//  7. [render] - Graphviz snapshots of computed layouts
//
// # Data Flow
//
//	pointer event (host)
//	         ↓
//	    [sortable] drag session (resolve click or drag, place the item)
//	         ↓
//	    [layout] index check → OnMove / OnRemove + OnInsert
//	         ↓
//	    caller updates its [signal.State] → Container.Update
//	         ↓
//	    [anim] scheduler animates displaced items
//
// The engine never reorders the caller's data; it reports what the gesture
// means and waits for the new sequence.
//
// # Quick Start
//
//	doc := memdom.NewDocument(geom.Size{Width: 800, Height: 600})
//	items := signal.New([]string{"a", "b", "c"})
//	c := sortable.New(doc, sortable.Options[string]{
//	    Callbacks: sortable.SliceHandlers(items),
//	    Layout:    layout.Vertical(),
//	    Render:    renderItem,
//	})
//	if err := c.Mount(sentinel); err != nil { ... }
//	defer c.Bind(items)()
//
// [geom]: github.com/matzehuels/dragsort/pkg/geom
// [ease]: github.com/matzehuels/dragsort/pkg/ease
// [signal]: github.com/matzehuels/dragsort/pkg/signal
// [dom]: github.com/matzehuels/dragsort/pkg/dom
// [dom/memdom]: github.com/matzehuels/dragsort/pkg/dom/memdom
// [dom/termhost]: github.com/matzehuels/dragsort/pkg/dom/termhost
// [anim]: github.com/matzehuels/dragsort/pkg/anim
// [layout]: github.com/matzehuels/dragsort/pkg/layout
// [sortable]: github.com/matzehuels/dragsort/pkg/sortable
// [render]: github.com/matzehuels/dragsort/pkg/render
// [signal.State]: github.com/matzehuels/dragsort/pkg/signal#State
package pkg
