// Package tui implements the root Bubble Tea model for zfiscal.
package tui

import (
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/zarlcorp/zfiscal/internal/config"
	"github.com/zarlcorp/zfiscal/internal/identity"
	"github.com/zarlcorp/zfiscal/internal/places"
)

type viewID int

const (
	viewPassword viewID = iota
	viewMenu
	viewGenerate
	viewCompute
	viewList
	viewDetail
	viewSettings
)

// accent colors the header and cursor markers.
var accent = lipgloss.Color("#5FAFD7")

// Model is the root TUI model.
type Model struct {
	version    string
	dataDir    string
	cfg        *config.Config
	cfgPath    string
	gen        *identity.Generator
	table      *places.Table
	store      *zstore.Store
	identities *zstore.Collection[identity.Identity]
	firstRun   bool

	active   viewID
	password passwordModel
	menu     menuModel
	generate generateModel
	compute  computeModel
	list     listModel
	detail   detailModel
	settings settingsModel

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model. Settings edited in the TUI are written
// to cfgPath.
func New(version, dataDir string, cfg *config.Config, cfgPath string, firstRun bool) (Model, error) {
	gen, err := cfg.Generator()
	if err != nil {
		return Model{}, err
	}
	table, err := cfg.Places()
	if err != nil {
		return Model{}, err
	}

	return Model{
		version:  version,
		dataDir:  dataDir,
		cfg:      cfg,
		cfgPath:  cfgPath,
		gen:      gen,
		table:    table,
		firstRun: firstRun,
		active:   viewPassword,
		password: newPasswordModel(firstRun),
		menu:     newMenuModel(version),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.password.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case passwordSubmitMsg:
		return m.openStore(msg.password)

	case navigateMsg:
		return m.navigate(msg.view)

	case saveIdentityMsg:
		return m.handleSave(msg.identity)

	case deleteIdentityMsg:
		return m.handleDelete(msg.id)

	case viewIdentityMsg:
		m.detail = newDetailModel(msg.identity)
		m.active = viewDetail
		return m, nil

	case saveSettingsMsg:
		return m.handleSettings(msg.cfg)
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	// password and menu render full screen without the shared header
	switch m.active {
	case viewPassword:
		return m.password.View()
	case viewMenu:
		return m.menu.View()
	}

	var content string
	switch m.active {
	case viewGenerate:
		content = m.generate.View()
	case viewCompute:
		content = m.compute.View()
	case viewList:
		content = m.list.View()
	case viewDetail:
		content = m.detail.View()
	case viewSettings:
		content = m.settings.View()
	}

	header := zstyle.RenderHeader("zfiscal", viewTitle(m.active), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewGenerate:
		return "Random Identity"
	case viewCompute:
		return "Compute Code"
	case viewList:
		return "Saved Identities"
	case viewDetail:
		return "Identity Details"
	case viewSettings:
		return "Settings"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewGenerate:
		return []zstyle.HelpPair{
			{Key: "s", Desc: "save"},
			{Key: "c", Desc: "copy all"},
			{Key: "enter", Desc: "copy field"},
			{Key: "n", Desc: "new"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewCompute:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "shift+tab", Desc: "prev"},
			{Key: "enter", Desc: "save"},
			{Key: "ctrl+y", Desc: "copy code"},
			{Key: "esc", Desc: "back"},
		}
	case viewList:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "view"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewDetail:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "copy field"},
			{Key: "c", Desc: "copy all"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewSettings:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "toggle"},
			{Key: "h/l", Desc: "adjust"},
			{Key: "s", Desc: "save"},
			{Key: "esc", Desc: "back"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewPassword:
		m.password, cmd = m.password.Update(msg)
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewGenerate:
		m.generate, cmd = m.generate.Update(msg)
	case viewCompute:
		m.compute, cmd = m.compute.Update(msg)
	case viewList:
		m.list, cmd = m.list.Update(msg)
	case viewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case viewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}

	return m, cmd
}

func (m Model) openStore(password string) (tea.Model, tea.Cmd) {
	if err := os.MkdirAll(m.dataDir, 0o700); err != nil {
		m.password, _ = m.password.Update(passwordErrMsg{
			err: fmt.Errorf("create data dir: %w", err),
		})
		return m, nil
	}

	pass := []byte(password)
	defer zcrypto.Erase(pass)

	fsys := zfilesystem.NewOSFileSystem(m.dataDir)
	s, err := zstore.Open(fsys, pass)
	if err != nil {
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	col, err := zstore.NewCollection[identity.Identity](s, "identities")
	if err != nil {
		s.Close()
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	m.store = s
	m.identities = col
	return m.navigate(viewMenu)
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		mm := newMenuModel(m.version)
		if m.identities != nil {
			if ids, err := m.identities.List(); err == nil {
				mm.identityCount = len(ids)
			}
		}
		m.menu = mm
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewGenerate:
		m.generate = newGenerateModel(m.gen.Generate())
		m.active = viewGenerate
		return m, tea.ClearScreen

	case viewCompute:
		m.compute = newComputeModel(m.gen, m.table)
		m.active = viewCompute
		return m, tea.Batch(m.compute.Init(), tea.ClearScreen)

	case viewList:
		m, cmd := m.loadList()
		return m, tea.Batch(cmd, tea.ClearScreen)

	case viewDetail:
		m.active = viewDetail
		return m, tea.ClearScreen

	case viewSettings:
		m.settings = newSettingsModel(*m.cfg)
		m.active = viewSettings
		return m, tea.ClearScreen
	}

	return m, nil
}

func (m Model) loadList() (Model, tea.Cmd) {
	ids, err := m.identities.List()
	if err != nil {
		// show empty list with error flash
		m.list = newListModel(nil)
		m.list.flash = "load: " + err.Error()
		m.active = viewList
		return m, clearFlashAfter()
	}

	// zstore.List does not guarantee order
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].CreatedAt.After(ids[j].CreatedAt)
	})

	m.list = newListModel(ids)
	m.active = viewList
	return m, nil
}

func (m Model) handleSave(id identity.Identity) (tea.Model, tea.Cmd) {
	if err := m.identities.Put(id.ID, id); err != nil {
		flash := "save: " + err.Error()
		switch m.active {
		case viewCompute:
			m.compute.flash = flash
		default:
			m.generate.flash = flash
		}
		return m, clearFlashAfter()
	}

	return m.updateActive(identitySavedMsg{})
}

func (m Model) handleDelete(id string) (tea.Model, tea.Cmd) {
	if err := m.identities.Delete(id); err != nil {
		if m.active == viewDetail {
			m.detail.flash = "delete: " + err.Error()
			return m, clearFlashAfter()
		}
		m.list.flash = "delete: " + err.Error()
		return m, clearFlashAfter()
	}

	m, cmd := m.loadList()
	m.list.flash = "deleted"
	return m, tea.Batch(cmd, clearFlashAfter())
}

// handleSettings writes cfg and rebuilds the generator so new identities
// pick up the changed switches.
func (m Model) handleSettings(cfg config.Config) (tea.Model, tea.Cmd) {
	fail := func(err error) (tea.Model, tea.Cmd) {
		m.settings.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	if err := cfg.Validate(); err != nil {
		return fail(err)
	}
	gen, err := cfg.Generator()
	if err != nil {
		return fail(err)
	}
	if err := cfg.Write(m.cfgPath); err != nil {
		return fail(err)
	}

	m.cfg = &cfg
	m.gen = gen
	return m.updateActive(settingsSavedMsg{})
}

// Close cleans up resources. Call after the program exits.
func (m Model) Close() {
	if m.store != nil {
		m.store.Close()
	}
}
