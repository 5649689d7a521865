package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"

	"github.com/MKhiriev/go-acme-cse/internal/service"
	"github.com/MKhiriev/go-acme-cse/models"
)

type mode int

const (
	modeTree mode = iota
	modeDetail
	modeConfirmDelete
	modeAddInstance
	modeBuildInfo
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// title, divider and help lines around the body
	chromeHeight = 8
)

var errNothingSelected = errors.New("no resource selected")

type treeModel struct {
	ctx  context.Context
	tree service.ResourceTreeService
	info models.AppBuildInfo

	copyToClipboard func(string) error

	list     list.Model
	viewport viewport.Model
	input    textinput.Model

	mode       mode
	detailPath string
	status     string
	errMsg     string
	loading    bool
}

func newTreeModel(ctx context.Context, tree service.ResourceTreeService, info models.AppBuildInfo) *treeModel {
	l := list.New(nil, list.NewDefaultDelegate(), defaultWidth, defaultHeight-chromeHeight)
	l.Title = "CSE resource tree"
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = keys.treeHelp
	l.Styles.Title = titleStyle

	in := textinput.New()
	in.Placeholder = "content"
	in.CharLimit = 1024

	return &treeModel{
		ctx:             ctx,
		tree:            tree,
		info:            info,
		copyToClipboard: clipboard.WriteAll,
		list:            l,
		viewport:        viewport.New(defaultWidth, defaultHeight-chromeHeight),
		input:           in,
		loading:         true,
	}
}

func (m *treeModel) Init() tea.Cmd {
	return m.loadTree()
}

func (m *treeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		m.viewport.Width = msg.Width - h
		m.viewport.Height = max(1, msg.Height-v-chromeHeight)
		return m, nil

	case treeLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.nodes))
		for _, n := range msg.nodes {
			items = append(items, treeItem{node: n})
		}
		m.status = fmt.Sprintf("%d resources", len(items))
		return m, m.list.SetItems(items)

	case resourceLoadedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.detailPath = msg.path
		m.viewport.SetContent(msg.body)
		m.viewport.GotoTop()
		m.mode = modeDetail
		return m, nil

	case deletedMsg:
		m.mode = modeTree
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = "deleted " + msg.path
		return m, m.loadTree()

	case instanceCreatedMsg:
		m.mode = modeTree
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("created %s in %s", msg.ri, msg.container)
		return m, m.loadTree()

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = "copied " + msg.path
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m *treeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.errMsg != "" {
		if key.Matches(msg, keys.enter, keys.esc) {
			m.errMsg = ""
		}
		return m, nil
	}

	switch m.mode {
	case modeDetail:
		switch {
		case key.Matches(msg, keys.esc):
			m.mode = modeTree
			return m, nil
		case key.Matches(msg, keys.copy):
			return m, m.copyPath(m.detailPath)
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case modeConfirmDelete:
		switch {
		case key.Matches(msg, keys.yes):
			node, ok := m.selected()
			if !ok {
				m.mode = modeTree
				return m, nil
			}
			return m, m.deleteResource(node.Path)
		case key.Matches(msg, keys.no):
			m.mode = modeTree
		}
		return m, nil

	case modeAddInstance:
		switch msg.Type {
		case tea.KeyEsc:
			m.input.Blur()
			m.mode = modeTree
			return m, nil
		case tea.KeyEnter:
			node, ok := m.selected()
			value := m.input.Value()
			m.input.Blur()
			if !ok || strings.TrimSpace(value) == "" {
				m.mode = modeTree
				return m, nil
			}
			return m, m.addInstance(node.Path, value)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modeBuildInfo:
		if key.Matches(msg, keys.esc, keys.quit) {
			m.mode = modeTree
		}
		return m, nil
	}

	// the list owns every key while the filter prompt is open
	if m.list.FilterState() == list.Filtering {
		return m.forward(msg)
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, m.loadTree()
	case key.Matches(msg, keys.info):
		m.mode = modeBuildInfo
		return m, nil
	case key.Matches(msg, keys.enter):
		node, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.loadResource(node.Path)
	case key.Matches(msg, keys.copy):
		node, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.copyPath(node.Path)
	case key.Matches(msg, keys.delete):
		node, ok := m.selected()
		if !ok {
			return m, nil
		}
		if node.Type == models.TypeCSEBase {
			m.status = "the CSEBase cannot be deleted"
			return m, nil
		}
		m.mode = modeConfirmDelete
		return m, nil
	case key.Matches(msg, keys.add):
		node, ok := m.selected()
		if !ok {
			return m, nil
		}
		if node.Type != models.TypeContainer {
			m.status = "content instances can only be added to containers"
			return m, nil
		}
		m.input.Reset()
		m.mode = modeAddInstance
		return m, m.input.Focus()
	}

	return m.forward(msg)
}

func (m *treeModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *treeModel) selected() (models.TreeNode, bool) {
	item, ok := m.list.SelectedItem().(treeItem)
	if !ok {
		return models.TreeNode{}, false
	}
	return item.node, true
}

func (m *treeModel) View() string {
	if m.errMsg != "" {
		return appStyle.Render(renderErrorOverlay(m.errMsg))
	}

	switch m.mode {
	case modeDetail:
		return appStyle.Render(renderPage(m.detailPath, m.viewport.View(), "↑/↓ scroll • c copy path • esc back • q quit"))
	case modeConfirmDelete:
		node, _ := m.selected()
		return appStyle.Render(renderConfirm(node.Path))
	case modeAddInstance:
		node, _ := m.selected()
		return appStyle.Render(renderPage("NEW CONTENT INSTANCE IN "+node.Path, m.input.View(), "enter create • esc cancel"))
	case modeBuildInfo:
		return appStyle.Render(renderBuildInfoWindow(m.info))
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString(helpStyle.Render("loading..."))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	return appStyle.Render(b.String())
}

// ── commands ──

func (m *treeModel) loadTree() tea.Cmd {
	return func() tea.Msg {
		nodes, err := m.tree.Load(m.ctx)
		return treeLoadedMsg{nodes: nodes, err: err}
	}
}

func (m *treeModel) loadResource(path string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.tree.Get(m.ctx, path)
		if err != nil {
			return resourceLoadedMsg{path: path, err: err}
		}
		body, err := json.MarshalIndent(res.Wrap(), "", "  ")
		if err != nil {
			return resourceLoadedMsg{path: path, err: err}
		}
		return resourceLoadedMsg{path: path, body: string(body)}
	}
}

func (m *treeModel) deleteResource(path string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{path: path, err: m.tree.Delete(m.ctx, path)}
	}
}

func (m *treeModel) addInstance(container, con string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.tree.AddContentInstance(m.ctx, container, con)
		return instanceCreatedMsg{container: container, ri: res.ResourceID, err: err}
	}
}

func (m *treeModel) copyPath(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return copiedMsg{err: errNothingSelected}
		}
		return copiedMsg{path: path, err: m.copyToClipboard(path)}
	}
}
