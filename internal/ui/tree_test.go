package ui

import (
	"strings"
	"testing"

	"github.com/pantryhq/pantry/internal/pantry"
)

func TestBuildTree(t *testing.T) {
	dairy := &pantry.Category{ID: 1, Name: "Dairy"}
	produce := &pantry.Category{ID: 2, Name: "Produce"}
	ingredients := []*pantry.Ingredient{
		{ID: 1, Name: "Milk", CategoryID: 1},
		{ID: 2, Name: "Apple", CategoryID: 2},
		{ID: 3, Name: "Butter", CategoryID: 1},
		{ID: 4, Name: "Saffron", CategoryID: 9},
	}

	nodes := BuildTree([]*pantry.Category{dairy, produce}, ingredients)

	if len(nodes) != 3 {
		t.Fatalf("BuildTree() returned %d nodes, want 3", len(nodes))
	}
	if len(nodes[0].Ingredients) != 2 || nodes[0].Ingredients[1].Name != "Butter" {
		t.Errorf("Dairy ingredients = %v", nodes[0].Ingredients)
	}
	if nodes[2].Category != nil || len(nodes[2].Ingredients) != 1 {
		t.Errorf("orphan node = %+v", nodes[2])
	}

	t.Run("no orphans", func(t *testing.T) {
		nodes := BuildTree([]*pantry.Category{dairy}, nil)
		if len(nodes) != 1 {
			t.Errorf("BuildTree() returned %d nodes, want 1", len(nodes))
		}
	})
}

func TestRenderTree(t *testing.T) {
	nodes := BuildTree(
		[]*pantry.Category{{ID: 1, Name: "Dairy"}},
		[]*pantry.Ingredient{
			{ID: 1, Name: "Milk", CategoryID: 1},
			{ID: 2, Name: "Butter", CategoryID: 1},
			{ID: 3, Name: "Saffron", CategoryID: 7},
		},
	)

	out := RenderTree(nodes)
	for _, want := range []string{"Dairy", treeBranch, treeLastBranch, "Milk", "Butter", "(missing category)", "category 7"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderTree() missing %q in:\n%s", want, out)
		}
	}
}

func TestTreeNodeToJSON(t *testing.T) {
	n := &TreeNode{Category: &pantry.Category{ID: 4, Name: "Spices"}}
	j := n.ToJSON()
	if j.ID == nil || *j.ID != 4 || j.Name != "Spices" {
		t.Errorf("ToJSON() = %+v", j)
	}
	if j.Ingredients == nil {
		t.Error("ToJSON().Ingredients is nil, want empty slice")
	}
}

func TestTable(t *testing.T) {
	out := Table([]string{"ID", "NAME"}, [][]string{{"1", "Dairy"}, {"10", "Produce"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Table() produced %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[1], "Dairy") || !strings.Contains(lines[2], "Produce") {
		t.Errorf("Table() rows = %q", lines[1:])
	}
	if strings.Index(lines[1], "Dairy") != strings.Index(lines[2], "Produce") {
		t.Errorf("columns not aligned:\n%s", out)
	}
}
