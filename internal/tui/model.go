package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"mediapair/internal/dragdrop"
	"mediapair/internal/geometry"
	"mediapair/internal/input"
	"mediapair/internal/logging"
	"mediapair/internal/mediafiles"
	"mediapair/internal/pending"
)

const (
	listTop      = 3
	columnGap    = 2
	defaultWidth = 80
	minColumn    = 16
)

// Options configures the model.
type Options struct {
	Buffer        *pending.Buffer
	Watcher       *mediafiles.DropWatcher
	Layout        geometry.Layout
	Modality      input.Modality
	SettleTimeout time.Duration
	SettleFrames  int
	KeepCache     bool
	Logger        *slog.Logger
}

// settleAnim plays the settle of one gesture. Closing done tells the
// settle wait that the animation completed.
type settleAnim struct {
	gestureID string
	list      dragdrop.ListID
	plan      dragdrop.SettlePlan
	frame     int
	frames    int
	interval  time.Duration
	done      chan struct{}
	closed    bool
}

func (a *settleAnim) offset() float64 {
	if a.frames <= 0 || a.frame >= a.frames {
		return a.plan.Target
	}
	progress := float64(a.frame) / float64(a.frames)
	return a.plan.From + (a.plan.Target-a.plan.From)*progress
}

func (a *settleAnim) complete() {
	if !a.closed {
		close(a.done)
		a.closed = true
	}
}

// Model is the Bubble Tea model of the reorder screen.
type Model struct {
	ctx       context.Context
	buffer    *pending.Buffer
	watcher   *mediafiles.DropWatcher
	coord     *dragdrop.Coordinator
	adapter   *input.Adapter
	confirmer *modalConfirmer
	changes   chan struct{}
	release   func()
	logger    *slog.Logger

	layout        geometry.Layout
	settleTimeout time.Duration
	settleFrames  int
	keepCache     bool

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width   int
	height  int
	focus   dragdrop.ListID
	cursor  map[dragdrop.ListID]int
	anim    *settleAnim
	confirm *confirmRequest
	status  string
	failed  bool
}

// New builds the model and attaches it to the buffer. Call Close when the
// program exits.
func New(ctx context.Context, opts Options) Model {
	logger := logging.NewComponentLogger(opts.Logger, "tui")
	layout := opts.Layout
	if layout.Pitch() <= 0 {
		layout = geometry.Layout{RowHeight: 1, RowMargin: 1}
	}
	timeout := opts.SettleTimeout
	if timeout <= 0 {
		timeout = dragdrop.DefaultSettleTimeout
	}
	frames := opts.SettleFrames
	if frames <= 0 {
		frames = 1
	}

	buffer := opts.Buffer
	onCommit := func(list dragdrop.ListID, selected, hovered int) {
		buffer.Reorder(kindOf(list), selected, hovered)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	m := Model{
		ctx:           ctx,
		buffer:        buffer,
		watcher:       opts.Watcher,
		coord:         dragdrop.NewCoordinator(layout, onCommit, opts.Logger),
		adapter:       input.NewAdapter(opts.Modality),
		confirmer:     newModalConfirmer(),
		changes:       make(chan struct{}, 1),
		logger:        logger,
		layout:        layout,
		settleTimeout: timeout,
		settleFrames:  frames,
		keepCache:     opts.KeepCache,
		keys:          defaultKeyMap(),
		help:          help.New(),
		spinner:       s,
		focus:         dragdrop.ListVideos,
		cursor:        map[dragdrop.ListID]int{},
	}
	buffer.SetConfirmer(m.confirmer)
	changes := m.changes
	m.release = buffer.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	m.syncLists()
	return m
}

// Close detaches the model from the buffer.
func (m Model) Close() {
	if m.release != nil {
		m.release()
	}
}

func kindOf(list dragdrop.ListID) mediafiles.Kind {
	if list == dragdrop.ListSubtitles {
		return mediafiles.KindSubtitle
	}
	return mediafiles.KindVideo
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForChange(m.ctx, m.changes),
		waitForConfirm(m.ctx, m.confirmer.requests),
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForDrop(m.ctx, m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.syncLists()
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd

	case settleFrameMsg:
		if m.anim == nil || m.anim.gestureID != msg.gestureID || m.anim.closed {
			return m, nil
		}
		m.anim.frame++
		if m.anim.frame >= m.anim.frames {
			m.anim.complete()
			return m, nil
		}
		return m, frameCmd(m.anim.gestureID, m.anim.interval)

	case settledMsg:
		m.settled(msg)
		return m, nil

	case bufferChangedMsg:
		m.syncLists()
		return m, waitForChange(m.ctx, m.changes)

	case dropBatchMsg:
		if added := m.buffer.AddHandles(msg.handles); added > 0 {
			m.setStatus(fmt.Sprintf("added %d dropped %s", added, plural(added, "file", "files")), false)
		}
		m.syncLists()
		return m, waitForDrop(m.ctx, m.watcher)

	case confirmRequestMsg:
		req := msg.request
		m.confirm = &req
		return m, nil

	case commitDoneMsg:
		m.commitDone(msg)
		m.syncLists()
		return m, nil

	case spinner.TickMsg:
		if !m.buffer.Processing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirm != nil {
		switch {
		case key.Matches(msg, m.keys.Yes):
			return m.answer(true)
		case key.Matches(msg, m.keys.No):
			return m.answer(false)
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Tab):
		if m.focus == dragdrop.ListVideos {
			m.focus = dragdrop.ListSubtitles
		} else {
			m.focus = dragdrop.ListVideos
		}
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.MoveUp):
		return m.nudge(-1)
	case key.Matches(msg, m.keys.MoveDown):
		return m.nudge(1)
	case key.Matches(msg, m.keys.Remove):
		m.removeFocused()
	case key.Matches(msg, m.keys.Reload):
		m.reloadDropDir()
	case key.Matches(msg, m.keys.Cache):
		m.keepCache = !m.keepCache
		m.setStatus("local cache "+onOff(m.keepCache), false)
	case key.Matches(msg, m.keys.Commit):
		return m.commit()
	}
	return nil
}

func (m *Model) answer(ok bool) tea.Cmd {
	m.confirm.reply <- ok
	m.confirm = nil
	return waitForConfirm(m.ctx, m.confirmer.requests)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	ev, ok := input.FromTea(msg, m.adapter.Modality())
	if !ok {
		return nil
	}
	sample, ok := m.adapter.Normalize(ev)
	if !ok {
		return nil
	}
	if sample.Action == input.Press && (m.confirm != nil || m.buffer.Processing()) {
		return nil
	}
	// Cells are addressed by their centre so the margin rows fall inside the
	// dead-zone between two list rows.
	sample.X += 0.5
	sample.Y += 0.5

	gesture, released := m.coord.Handle(sample)
	if sample.Action == input.Press {
		for _, list := range dragdrop.Lists {
			if view := m.coord.View(list); view.Active {
				m.focus = list
				m.cursor[list] = view.Selected
			}
		}
	}
	if !released {
		return nil
	}
	return m.startSettle(gesture)
}

func (m *Model) nudge(delta int) tea.Cmd {
	if m.buffer.Processing() {
		return nil
	}
	gesture, ok := m.coord.Nudge(m.focus, m.cursor[m.focus], delta)
	if !ok {
		return nil
	}
	return m.startSettle(gesture)
}

func (m *Model) startSettle(g dragdrop.Gesture) tea.Cmd {
	interval := m.settleTimeout / time.Duration(m.settleFrames+2)
	if interval <= 0 {
		interval = time.Millisecond
	}
	m.anim = &settleAnim{
		gestureID: g.ID,
		list:      g.List,
		plan:      g.SettlePlan,
		frames:    m.settleFrames,
		interval:  interval,
		done:      make(chan struct{}),
	}
	return tea.Batch(
		frameCmd(g.ID, interval),
		awaitSettleCmd(m.ctx, g.ID, m.anim.done, m.settleTimeout),
	)
}

func (m *Model) settled(msg settledMsg) {
	if !m.coord.Settled(msg.gestureID, msg.cause) {
		return
	}
	if msg.cause == dragdrop.SettleTimedOut {
		m.logger.Debug("settle animation did not finish in time",
			logging.GestureID(msg.gestureID),
		)
	}
	if anim := m.anim; anim != nil && anim.gestureID == msg.gestureID {
		anim.complete()
		if !anim.plan.NoOp && m.cursor[anim.list] == anim.plan.Selected {
			m.cursor[anim.list] = anim.plan.Hovered
		}
		m.anim = nil
	}
	m.syncLists()
}

func (m *Model) removeFocused() {
	if m.coord.Busy() || m.buffer.Processing() {
		return
	}
	items := m.buffer.Items(kindOf(m.focus))
	idx := m.cursor[m.focus]
	if idx < 0 || idx >= len(items) {
		return
	}
	if m.buffer.RemoveByName(kindOf(m.focus), items[idx].Name) {
		m.setStatus("removed "+items[idx].Name, false)
	}
	m.syncLists()
}

func (m *Model) reloadDropDir() {
	if m.watcher == nil {
		m.setStatus("no drop directory configured", true)
		return
	}
	handles, err := m.watcher.Scan()
	if err != nil {
		if errors.Is(err, mediafiles.ErrNoMedia) {
			m.setStatus("drop directory is empty", false)
			return
		}
		logging.Warn(m.logger, "drop_scan", "scan drop directory failed",
			logging.Hint("check drop_dir permissions"),
			logging.Error(err),
		)
		m.setStatus(err.Error(), true)
		return
	}
	added := m.buffer.AddHandles(handles)
	m.setStatus(fmt.Sprintf("added %d %s from %s", added, plural(added, "file", "files"), m.watcher.Dir()), false)
	m.syncLists()
}

func (m *Model) commit() tea.Cmd {
	if m.buffer.Processing() || m.coord.Busy() {
		return nil
	}
	if m.buffer.Len() == 0 {
		m.setStatus("nothing to upload", false)
		return nil
	}
	if len(m.buffer.Videos()) == 0 {
		m.setStatus("add a video to pair the subtitles with", true)
		return nil
	}
	m.setStatus("", false)
	return tea.Batch(m.spinner.Tick, commitCmd(m.ctx, m.buffer, m.keepCache))
}

func (m *Model) commitDone(msg commitDoneMsg) {
	switch {
	case errors.Is(msg.err, pending.ErrCommitInProgress):
		m.setStatus("an upload is already running", true)
	case errors.Is(msg.err, pending.ErrNoVideos):
		m.setStatus("add a video to pair the subtitles with", true)
	case msg.err != nil:
		m.setStatus("upload failed: "+msg.err.Error(), true)
	case msg.outcome == pending.OutcomeCommitted:
		m.setStatus("upload complete", false)
	case msg.outcome == pending.OutcomeDeclined:
		m.setStatus("upload cancelled", false)
	default:
		m.setStatus("nothing to upload", false)
	}
}

func (m *Model) setStatus(text string, failed bool) {
	m.status = text
	m.failed = failed
}

func (m *Model) moveCursor(delta int) {
	m.cursor[m.focus] += delta
	m.clampCursor(m.focus)
}

func (m *Model) clampCursor(list dragdrop.ListID) {
	n := len(m.buffer.Items(kindOf(list)))
	c := m.cursor[list]
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	m.cursor[list] = c
}

func (m Model) columnWidth() int {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	return max((width-columnGap)/2, minColumn)
}

// syncLists tells the coordinator where each list is drawn.
func (m *Model) syncLists() {
	width := m.columnWidth()
	pitch := m.layout.Pitch()
	for i, list := range dragdrop.Lists {
		rows := len(m.buffer.Items(kindOf(list)))
		rect := geometry.Rect{
			Left:   float64(i * (width + columnGap)),
			Top:    listTop,
			Width:  float64(width),
			Height: float64(rows) * pitch,
		}
		m.coord.SetList(list, rect, rows)
		m.clampCursor(list)
	}
}

func (m Model) View() string {
	if m.confirm != nil {
		return m.confirmView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("mediapair"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(m.summary()))
	b.WriteString("\n\n")

	width := m.columnWidth()
	left := m.renderList(dragdrop.ListVideos, width)
	right := m.renderList(dragdrop.ListSubtitles, width)
	b.WriteString(m.header(dragdrop.ListVideos, "Videos", width))
	b.WriteString(strings.Repeat(" ", columnGap))
	b.WriteString(m.header(dragdrop.ListSubtitles, "Subtitles", width))
	b.WriteString("\n")

	blank := strings.Repeat(" ", width)
	for i := range max(len(left), len(right)) {
		l, r := blank, blank
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		b.WriteString(l)
		b.WriteString(strings.Repeat(" ", columnGap))
		b.WriteString(r)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) summary() string {
	videos := m.buffer.Videos()
	var total int64
	for _, item := range videos {
		total += item.Handle.Size
	}
	return fmt.Sprintf("%d %s · %d %s · %s · cache %s",
		len(videos), plural(len(videos), "video", "videos"),
		len(m.buffer.Subtitles()), plural(len(m.buffer.Subtitles()), "subtitle", "subtitles"),
		humanize.Bytes(uint64(max(total, 0))),
		onOff(m.keepCache),
	)
}

func (m Model) header(list dragdrop.ListID, title string, width int) string {
	text := truncate(fmt.Sprintf("%s (%d)", title, len(m.buffer.Items(kindOf(list)))), width)
	pad := strings.Repeat(" ", max(width-lipgloss.Width(text), 0))
	if list == m.focus {
		return focusedHeaderStyle.Render(text) + pad
	}
	return headerStyle.Render(text) + pad
}

func (m Model) statusLine() string {
	if m.buffer.Processing() {
		return m.spinner.View() + " uploading..."
	}
	switch {
	case m.status == "":
		return ""
	case m.failed:
		return errorStyle.Render(m.status)
	default:
		return okStyle.Render(m.status)
	}
}

// renderList returns the lines of one list column. Every row takes
// RowHeight lines followed by RowMargin blank lines. The dragged row is drawn
// at its slot shifted by the current offset and leaves a placeholder behind.
func (m Model) renderList(list dragdrop.ListID, width int) []string {
	items := m.buffer.Items(kindOf(list))
	blank := strings.Repeat(" ", width)
	if len(items) == 0 {
		return []string{mutedStyle.Render(padRight(truncate("  (empty)", width), width))}
	}

	pitch := max(int(m.layout.Pitch()), 1)
	lines := make([]string, len(items)*pitch)
	for i := range lines {
		lines[i] = blank
	}

	view := m.coord.View(list)
	focused := list == m.focus
	for i, item := range items {
		prefix := "  "
		style := rowStyle
		switch view.Marker(i) {
		case dragdrop.MarkerShiftUp:
			prefix, style = "↑ ", shiftedStyle
		case dragdrop.MarkerShiftDown:
			prefix, style = "↓ ", shiftedStyle
		}
		if focused && i == m.cursor[list] && !view.Active {
			style = cursorStyle
		}
		lines[i*pitch] = style.Render(formatRow(prefix, i, item, width))
	}

	if view.Active && view.Selected >= 0 && view.Selected < len(items) {
		offset := view.Offset
		if m.anim != nil && m.anim.gestureID == view.GestureID {
			offset = m.anim.offset()
		}
		slot := view.Selected * pitch
		lines[slot] = placeholderStyle.Render(padRight(strings.Repeat("┄", max(width-2, 0)), width))
		pos := slot + int(math.Round(offset))
		pos = min(max(pos, 0), len(lines)-1)
		lines[pos] = draggedStyle.Render(formatRow("≡ ", view.Selected, items[view.Selected], width))
	}
	return lines
}

func (m Model) confirmView() string {
	body := m.confirm.message + "\n\n" + mutedStyle.Render("[y] overwrite  [n] cancel")
	modal := modalStyle.Render(body)
	if m.width <= 0 || m.height <= 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func formatRow(prefix string, index int, item pending.Item, width int) string {
	size := humanize.Bytes(uint64(max(item.Handle.Size, 0)))
	label := fmt.Sprintf("%s%2d. %s", prefix, index+1, item.Name)
	label = truncate(label, width-len(size)-1)
	gap := max(width-lipgloss.Width(label)-len(size), 1)
	return label + strings.Repeat(" ", gap) + size
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
