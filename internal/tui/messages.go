package tui

import "github.com/MKhiriev/go-acme-cse/models"

type treeLoadedMsg struct {
	nodes []models.TreeNode
	err   error
}

type resourceLoadedMsg struct {
	path string
	body string
	err  error
}

type deletedMsg struct {
	path string
	err  error
}

type instanceCreatedMsg struct {
	container string
	ri        string
	err       error
}

type copiedMsg struct {
	path string
	err  error
}
