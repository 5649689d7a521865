package models

import "strings"

// TreeNode is one resource of the tree shown by the resource browser.
type TreeNode struct {
	// Path is the CSE-relative structured path, e.g.
	// "cse-in/NoiseCancellationSystem/Schedule".
	Path       string
	Name       string
	ResourceID string
	Type       ResourceType
	// Depth is 0 for the CSEBase.
	Depth int
}

// NewTreeNode derives name and depth from the structured path of res.
func NewTreeNode(path string, res Resource) TreeNode {
	path = strings.Trim(path, "/")
	segments := strings.Split(path, "/")
	return TreeNode{
		Path:       path,
		Name:       segments[len(segments)-1],
		ResourceID: res.ResourceID,
		Type:       res.Type,
		Depth:      len(segments) - 1,
	}
}
