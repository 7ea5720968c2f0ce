package ui

import (
	"strings"

	"github.com/pantryhq/pantry/internal/pantry"
)

const (
	treeBranch     = "├─ "
	treeLastBranch = "└─ "
)

// TreeNode is a category with the ingredients referencing it. Category is nil
// for the group of ingredients whose category no longer exists.
type TreeNode struct {
	Category    *pantry.Category
	Ingredients []*pantry.Ingredient
}

// TreeNodeJSON is the JSON-serializable version of TreeNode.
type TreeNodeJSON struct {
	ID          *uint                `json:"id"`
	Name        string               `json:"name"`
	Ingredients []*pantry.Ingredient `json:"ingredients"`
}

// ToJSON converts a TreeNode to its JSON-serializable form.
func (n *TreeNode) ToJSON() *TreeNodeJSON {
	out := &TreeNodeJSON{Ingredients: n.Ingredients}
	if out.Ingredients == nil {
		out.Ingredients = []*pantry.Ingredient{}
	}
	if n.Category != nil {
		out.ID = &n.Category.ID
		out.Name = n.Category.Name
	}
	return out
}

// BuildTree groups ingredients under their categories. Categories and
// ingredients keep the order they were passed in. Ingredients pointing at a
// missing category are collected in a trailing node without a category.
func BuildTree(categories []*pantry.Category, ingredients []*pantry.Ingredient) []*TreeNode {
	nodes := make([]*TreeNode, 0, len(categories)+1)
	byID := make(map[uint]*TreeNode, len(categories))
	for _, c := range categories {
		n := &TreeNode{Category: c}
		nodes = append(nodes, n)
		byID[c.ID] = n
	}

	var orphans *TreeNode
	for _, i := range ingredients {
		if n, ok := byID[i.CategoryID]; ok {
			n.Ingredients = append(n.Ingredients, i)
			continue
		}
		if orphans == nil {
			orphans = &TreeNode{}
		}
		orphans.Ingredients = append(orphans.Ingredients, i)
	}
	if orphans != nil {
		nodes = append(nodes, orphans)
	}
	return nodes
}

// RenderTree renders the tree with box-drawing connectors.
func RenderTree(nodes []*TreeNode) string {
	var sb strings.Builder
	for _, n := range nodes {
		if n.Category == nil {
			sb.WriteString(Warning.Render("(missing category)"))
		} else {
			sb.WriteString(ID.Render(pantry.FormatID(n.Category.ID)) + " " + Name.Render(n.Category.Name))
		}
		sb.WriteString("\n")

		for idx, i := range n.Ingredients {
			connector := treeBranch
			if idx == len(n.Ingredients)-1 {
				connector = treeLastBranch
			}
			sb.WriteString(Muted.Render(connector))
			sb.WriteString(ID.Render(pantry.FormatID(i.ID)) + " " + i.Name)
			if n.Category == nil {
				sb.WriteString(Muted.Render(" (category " + pantry.FormatID(i.CategoryID) + ")"))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
