// Package tui is an interactive product browser with live filtering.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/muesli/termenv"

	"github.com/fachschaft/dms/src/api"
)

var (
	foreground = lipgloss.Color("#f8f8f2")
	comment    = lipgloss.Color("#6272a4")
	cyan       = lipgloss.Color("#8be9fd")
	green      = lipgloss.Color("#50fa7b")
	purple     = lipgloss.Color("#bd93f9")
	red        = lipgloss.Color("#ff5555")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(purple).
			Bold(true).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(comment).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(foreground)

	priceStyle = lipgloss.NewStyle().
			Foreground(cyan)

	stockStyle = lipgloss.NewStyle().
			Foreground(green)

	emptyStyle = lipgloss.NewStyle().
			Foreground(comment)

	helpStyle = lipgloss.NewStyle().
			Foreground(comment)

	errorStyle = lipgloss.NewStyle().
			Foreground(red)
)

type model struct {
	client   *api.Client
	input    textinput.Model
	viewport viewport.Model
	products []api.Product
	err      error
	loading  bool
	width    int
	height   int
}

type productsMsg struct {
	products []api.Product
	err      error
}

func initialModel(client *api.Client) model {
	ti := textinput.New()
	ti.Placeholder = "Filter products..."
	ti.Focus()
	ti.Width = 50

	return model{
		client:  client,
		input:   ti,
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadProducts)
}

func (m model) loadProducts() tea.Msg {
	products, err := m.client.Products()
	return productsMsg{products: products, err: err}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+r":
			m.loading = true
			return m, m.loadProducts
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width, msg.Height-6)
		m.viewport.SetContent(m.renderProducts())

	case productsMsg:
		m.loading = false
		m.products = msg.products
		m.err = msg.err
		m.viewport.SetContent(m.renderProducts())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport.SetContent(m.renderProducts())

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// filtered returns the products matching the current filter text,
// best matches first.
func (m model) filtered() []api.Product {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return m.products
	}

	names := make([]string, len(m.products))
	for i, p := range m.products {
		names[i] = p.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	result := make([]api.Product, 0, len(ranks))
	for _, r := range ranks {
		result = append(result, m.products[r.OriginalIndex])
	}
	return result
}

func (m model) renderProducts() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	products := m.filtered()
	if len(products) == 0 {
		return helpStyle.Render("No products match")
	}

	var sb strings.Builder
	for _, p := range products {
		stock := stockStyle.Render(fmt.Sprintf("%3d", p.Quantity))
		if p.Quantity == 0 {
			stock = emptyStyle.Render("  -")
		}
		sb.WriteString(fmt.Sprintf("%s  %s  %s\n",
			stock,
			nameStyle.Render(fmt.Sprintf("%-30s", p.Name)),
			priceStyle.Render(p.FormatPrice())))
	}
	return sb.String()
}

func (m model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Products"))
	sb.WriteString("\n\n")

	sb.WriteString(inputStyle.Render(m.input.View()))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(helpStyle.Render("Loading..."))
	} else {
		sb.WriteString(m.viewport.View())
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Type: filter • Ctrl+R: reload • Esc: quit"))

	return sb.String()
}

// applyColorPreference drops all styling when color is disabled.
func applyColorPreference(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Run starts the product browser.
func Run(client *api.Client, noColor bool) error {
	applyColorPreference(noColor)
	p := tea.NewProgram(initialModel(client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
