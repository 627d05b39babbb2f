package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/adventure-engine/internal/game"
)

const (
	agentName       = "Narrator"
	placeholderText = "What do you do?"
	turnTimeout     = 3 * time.Minute
)

// GameUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type GameUI struct {
	engine       *game.Engine
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	loading      bool
	fresh        bool

	// transcript holds every rendered exchange so content can be
	// reflowed when the window resizes.
	transcript []entry

	// Quit confirmation state
	showQuitModal bool
	saveErr       error

	// Progress bar state
	progressTick int
}

type entryKind int

const (
	entryNarrator entryKind = iota
	entryUser
	entrySystem
	entryError
)

type entry struct {
	kind entryKind
	text string
}

type introMsg struct {
	text string
}

type turnMsg struct {
	result *game.TurnResult
}

type progressTickMsg struct{}

type saveFailedMsg struct {
	err error
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	combatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // light red
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

func NewGameUI(engine *game.Engine, fresh bool) GameUI {
	ta := textarea.New()
	ta.Placeholder = placeholderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	ui := GameUI{
		engine:       engine,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
		fresh:        fresh,
		loading:      fresh,
	}
	if !fresh {
		sess := engine.Session()
		ui.transcript = append(ui.transcript, entry{entrySystem,
			fmt.Sprintf("Welcome back, %s. You are in %s (turn %d).",
				sess.Player.Name, sess.Location, sess.TurnCount)})
	}
	return ui
}

func (m GameUI) Init() tea.Cmd {
	if m.fresh {
		return tea.Batch(m.generateIntro(), progressTick(), textarea.Blink)
	}
	return textarea.Blink
}

func (m GameUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(chatWidth - 4)

		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()
			return m.handleInput(input)
		}

	case introMsg:
		m.loading = false
		m.transcript = append(m.transcript, entry{entryNarrator, msg.text})
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())

	case turnMsg:
		m.loading = false
		m.appendTurnResult(msg.result)
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// handleInput routes one line of player input: meta-commands are applied
// immediately, combat actions are resolved synchronously, and anything
// else becomes an exploration turn sent to the narrator.
func (m GameUI) handleInput(input string) (tea.Model, tea.Cmd) {
	lower := strings.ToLower(input)

	switch lower {
	case "quit", "exit", "q":
		m.showQuitModal = true
		return m, nil
	case "help", "h", "?":
		m.transcript = append(m.transcript, entry{entrySystem, m.helpText()})
		m.writeChatContent()
		return m, nil
	case "status", "stats":
		m.transcript = append(m.transcript, entry{entrySystem, m.statusText()})
		m.writeChatContent()
		return m, nil
	case "inventory", "inv", "i":
		m.transcript = append(m.transcript, entry{entrySystem, m.inventoryText()})
		m.writeChatContent()
		return m, nil
	case "history", "events", "kb":
		m.transcript = append(m.transcript, entry{entrySystem, m.historyText()})
		m.writeChatContent()
		return m, nil
	}

	sess := m.engine.Session()

	if sess.InCombat() {
		m.transcript = append(m.transcript, entry{entryUser, input})
		rep, err := m.engine.CombatTurn(input)
		if err != nil {
			m.transcript = append(m.transcript, entry{entryError, err.Error()})
		} else {
			m.transcript = append(m.transcript, entry{entrySystem, strings.Join(rep.Lines, "\n")})
		}
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil
	}

	if strings.HasPrefix(lower, "use ") {
		name := strings.TrimSpace(input[4:])
		lines, err := m.engine.UseItem(name)
		if err != nil {
			m.transcript = append(m.transcript, entry{entryError, err.Error()})
		} else {
			m.transcript = append(m.transcript, entry{entrySystem, strings.Join(lines, "\n")})
		}
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil
	}

	m.transcript = append(m.transcript, entry{entryUser, input})
	m.loading = true
	m.progressTick = 0
	m.writeChatContent()
	return m, tea.Batch(m.runTurn(input), progressTick())
}

func (m GameUI) runTurn(action string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
		defer cancel()
		return turnMsg{result: m.engine.ExplorationTurn(ctx, action)}
	}
}

func (m GameUI) generateIntro() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
		defer cancel()
		return introMsg{text: m.engine.Intro(ctx)}
	}
}

func (m *GameUI) appendTurnResult(r *game.TurnResult) {
	m.transcript = append(m.transcript, entry{entryNarrator, r.Narrative})
	for _, notice := range r.Notices {
		m.transcript = append(m.transcript, entry{entrySystem, notice})
	}
	if r.CombatStarted {
		m.transcript = append(m.transcript, entry{entrySystem,
			"Combat commands: attack (a), use <item>, defend (d), flee (f)"})
	}
}

// writeChatContent reflows the whole transcript for the current viewport
// width.
func (m *GameUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("ADVENTURE ENGINE") + "\n\n")
	content.WriteString("Describe what you do and press Enter. Type 'help' for commands.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth-6)) + "\n\n")

	for _, e := range m.transcript {
		switch e.kind {
		case entryNarrator:
			prefix := narratorStyle.Render(agentName + ": ")
			content.WriteString(prefix + wordwrap.String(e.text, chatWidth-len(agentName)-2) + "\n\n")
		case entryUser:
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(e.text, chatWidth-6) + "\n\n")
		case entrySystem:
			content.WriteString(systemStyle.Render(wordwrap.String(e.text, chatWidth)) + "\n\n")
		case entryError:
			content.WriteString(errorStyle.Render("Error: "+e.text) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m *GameUI) writeMetadata() string {
	sess := m.engine.Session()
	var content strings.Builder
	content.WriteString(titleStyle.Render("STATUS") + "\n\n")

	content.WriteString(fmt.Sprintf("%s\n", sess.Player.Name))
	content.WriteString(fmt.Sprintf("Health: %d/%d\n", sess.Player.Health, sess.Player.MaxHealth))
	content.WriteString(fmt.Sprintf("Attack: %d  Defense: %d\n\n", sess.Player.Attack, sess.Player.Defense))

	content.WriteString("World:\n")
	content.WriteString(sess.World.Name + "\n\n")

	content.WriteString("Location:\n")
	content.WriteString(sess.Location + "\n\n")

	content.WriteString(fmt.Sprintf("Turn: %d\n", sess.TurnCount))
	content.WriteString(fmt.Sprintf("Items: %d\n\n", len(sess.Player.Inventory)))

	if enc := sess.Encounter(); enc != nil {
		content.WriteString(combatStyle.Render("IN COMBAT") + "\n")
		content.WriteString(fmt.Sprintf("%s\n", enc.Enemy.Name))
		content.WriteString(fmt.Sprintf("Enemy HP: %d\n\n", enc.Enemy.Health))
	}

	content.WriteString("Commands:\n")
	content.WriteString("• help: Commands\n")
	content.WriteString("• status: Player stats\n")
	content.WriteString("• inventory: Items\n")
	content.WriteString("• history: Journal\n")
	content.WriteString("• Ctrl+C: Quit\n")

	return content.String()
}

func (m GameUI) helpText() string {
	return strings.TrimSpace(`
Commands:
• help (h, ?) - Show this help
• status (stats) - Show your character
• inventory (inv, i) - List carried items
• use <item> - Use an item from your inventory
• history (events, kb) - Recent journal entries
• quit (q) - Save and quit

Anything else is sent to the narrator as your action.
In combat: attack (a), use <item>, defend (d), flee (f).`)
}

func (m GameUI) statusText() string {
	p := m.engine.Session().Player
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n", p.Name))
	b.WriteString(fmt.Sprintf("Health: %d/%d\n", p.Health, p.MaxHealth))
	b.WriteString(fmt.Sprintf("Attack: %d\n", p.Attack))
	b.WriteString(fmt.Sprintf("Defense: %d", p.Defense))
	if len(p.Skills) > 0 {
		b.WriteString("\nSkills: " + strings.Join(p.Skills, ", "))
	}
	return b.String()
}

func (m GameUI) inventoryText() string {
	p := m.engine.Session().Player
	if len(p.Inventory) == 0 {
		return "Your inventory is empty."
	}
	var b strings.Builder
	b.WriteString("Inventory:\n")
	for _, item := range p.Inventory {
		b.WriteString(fmt.Sprintf("• %s (%s) - %s\n", item.Name, item.Type, item.Description))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m GameUI) historyText() string {
	entries := m.engine.Session().Journal.Recent(10)
	if len(entries) == 0 {
		return "Nothing notable has happened yet."
	}
	var b strings.Builder
	b.WriteString("Recent events:\n")
	for _, e := range entries {
		b.WriteString("• " + e + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m GameUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case saveFailedMsg:
		m.saveErr = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.saveErr != nil {
			// The save already failed once; the player chooses
			// between losing progress and returning to the game.
			switch msg.String() {
			case "y", "Y", "ctrl+c":
				return m, tea.Quit
			case "n", "N", "esc":
				m.saveErr = nil
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.saveAndQuit()
		default:
			switch msg.String() {
			case "y", "Y":
				return m, m.saveAndQuit()
			case "n", "N", "esc":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

// saveAndQuit persists the session before exiting. A failed save is
// reported back to the quit modal instead of quitting, so progress is
// never lost silently.
func (m GameUI) saveAndQuit() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.engine.Save(ctx); err != nil {
			return saveFailedMsg{err: err}
		}
		return tea.Quit()
	}
}

func (m GameUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	if m.saveErr != nil {
		content.WriteString(modalTitleStyle.Render("Error saving game"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(m.saveErr.Error()))
		content.WriteString("\n\n")
		content.WriteString(promptStyle.Render("Press Y to quit without saving, or N to return to the game"))
	} else {
		content.WriteString(modalTitleStyle.Render("Save and Quit?"))
		content.WriteString("\n\n")
		content.WriteString("Your progress will be saved before exiting.")
		content.WriteString("\n\n")
		content.WriteString(promptStyle.Render("Press Y to save and quit, N to continue, or Ctrl+C to quit without saving"))
	}

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m GameUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
