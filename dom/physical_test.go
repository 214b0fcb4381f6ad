package dom

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestPhysicalInsertBefore(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shadytree.dom")
	defer teardown()
	//
	doc := NewDocument()
	ul, li := buildList(doc)
	x := doc.CreateElement("li")
	if err := ul.PhysicalInsertBefore(x, li[1]); err != nil {
		t.Fatalf("expected insert to succeed, got %v", err)
	}
	assert.Equal(t, []*Node{li[0], x, li[1], li[2]}, ul.PhysicalChildren())
	if i := ul.PhysicalIndexOf(x); i != 1 {
		t.Errorf("expected x at index 1, is at %d", i)
	}
	other := doc.CreateElement("ol")
	other.PhysicalAppend(li[2]) // re-parenting detaches first
	assert.Equal(t, []*Node{li[0], x, li[1]}, ul.PhysicalChildren())
	if li[2].PhysicalParent() != other {
		t.Errorf("expected c to be child of %v, is child of %v", other, li[2].PhysicalParent())
	}
	if err := ul.PhysicalInsertBefore(x, li[2]); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign reference, is %v", err)
	}
	if err := li[0].PhysicalInsertBefore(ul, nil); !errors.Is(err, ErrHierarchy) {
		t.Errorf("expected ErrHierarchy for cyclic insert, is %v", err)
	}
	if err := ul.PhysicalInsertBefore(x, x); err != nil {
		t.Errorf("expected insert of x before itself to be a no-op, is %v", err)
	}
	assert.Equal(t, []*Node{li[0], x, li[1]}, ul.PhysicalChildren())
}

func TestPhysicalAccessors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shadytree.dom")
	defer teardown()
	//
	doc := NewDocument()
	ul, li := buildList(doc)
	if c, ok := ul.PhysicalChild(2); !ok || c != li[2] {
		t.Errorf("expected child #2 to be c, is %v", c)
	}
	if _, ok := ul.PhysicalChild(3); ok {
		t.Errorf("expected child #3 not to exist")
	}
	if li[0].PhysicalPreviousSibling() != nil || li[2].PhysicalNextSibling() != nil {
		t.Errorf("expected list ends to have no outer siblings")
	}
	if li[1].Isolate().PhysicalParent() != nil {
		t.Errorf("expected isolated node to have no parent")
	}
	if ul.PhysicalChildCount() != 2 {
		t.Errorf("expected 2 children after isolating b, have %d", ul.PhysicalChildCount())
	}
}

func TestMutationRecords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shadytree.dom")
	defer teardown()
	//
	doc := NewDocument()
	ul, li := buildList(doc)
	var records []MutationRecord
	cancel := doc.Observe(func(r MutationRecord) {
		records = append(records, r)
	})
	ul.PhysicalInsertBefore(li[2], li[0])
	if len(records) != 2 {
		t.Fatalf("expected a move to produce 2 records, have %v", records)
	}
	if records[0].Kind != ChildRemoved || records[1].Kind != ChildInserted {
		t.Errorf("expected remove, insert; have %v", records)
	}
	if records[1].Before != li[0] || records[1].Target != ul {
		t.Errorf("expected insert into ul before a, is %v", records[1])
	}
	cancel()
	ul.PhysicalRemove(li[0])
	if len(records) != 2 {
		t.Errorf("expected no records after cancel, have %d", len(records))
	}
}
