package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-acme-cse/models"
)

// treeItem adapts a TreeNode to the bubbles list.
type treeItem struct {
	node models.TreeNode
}

func (i treeItem) Title() string {
	return strings.Repeat("  ", i.node.Depth) + typeIcon(i.node.Type) + " " + i.node.Name
}

func (i treeItem) Description() string {
	return fmt.Sprintf("%s%s  ri=%s", strings.Repeat("  ", i.node.Depth), i.node.Type, i.node.ResourceID)
}

func (i treeItem) FilterValue() string {
	return i.node.Path
}

func typeIcon(t models.ResourceType) string {
	switch t {
	case models.TypeCSEBase:
		return "[CB]"
	case models.TypeAE:
		return "[AE]"
	case models.TypeContainer:
		return "[CNT]"
	case models.TypeContentInst:
		return "[CIN]"
	case models.TypeSubscription:
		return "[SUB]"
	case models.TypeACP:
		return "[ACP]"
	default:
		return "[?]"
	}
}
