package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	wasmgc "github.com/wippyai/wasm-gc"
	"github.com/wippyai/wasm-gc/gc"
	"github.com/wippyai/wasm-gc/objects"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive heap inspector",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("tui requires a terminal")
		}
		p := tea.NewProgram(newInspectorModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

const historySize = 18

// heapObserver records lifecycle events so each command's output shows what
// the heap did.
type heapObserver struct {
	lines []string
}

func (o *heapObserver) OnHeapEvent(e gc.Event) {
	switch e.Type {
	case gc.EventRegistered:
		o.lines = append(o.lines, fmt.Sprintf("  + %s #%d", e.Kind, e.Handle))
	case gc.EventSwept:
		o.lines = append(o.lines, fmt.Sprintf("  - %s #%d finalized", e.Kind, e.Handle))
	case gc.EventClosed:
		o.lines = append(o.lines, "  heap closed")
	}
}

type inspectorModel struct {
	heap    *gc.Heap
	obs     *heapObserver
	input   textinput.Model
	history []string
}

func newInspectorModel() *inspectorModel {
	heap := gc.NewHeap()
	obs := &heapObserver{}
	heap.Subscribe(obs)

	ti := textinput.New()
	ti.Placeholder = "comp | mod <comp> | pin <h> | collect | help"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()

	return &inspectorModel{
		heap:    heap,
		obs:     obs,
		input:   ti,
		history: []string{helpStyle.Render("type 'help' for commands")},
	}
}

func (m *inspectorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.heap.Close()
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "q" {
				m.heap.Close()
				return m, tea.Quit
			}
			m.push("> " + line)
			m.push(m.execute(line))
			for _, l := range m.obs.lines {
				m.push(helpStyle.Render(l))
			}
			m.obs.lines = nil
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inspectorModel) push(line string) {
	m.history = append(m.history, line)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
}

func (m *inspectorModel) execute(line string) string {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		return helpText

	case "comp":
		comp, err := objects.NewCompartment(m.heap)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		return fmt.Sprintf("compartment #%d (intrinsics #%d)", comp.Handle(), comp.Intrinsics())

	case "mod":
		comp, err := m.resolve(args, 0, wasmgc.KindCompartment)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		mod, err := objects.NewModule(m.heap, comp)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		return fmt.Sprintf("module #%d", mod.Handle())

	case "fn":
		mod, err := m.resolve(args, 0, wasmgc.KindModule)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		name := ""
		if len(args) > 1 {
			name = args[1]
		}
		fn, err := objects.NewFunction(m.heap, mod, name)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		if obj, ok := m.heap.Get(mod); ok {
			obj.(*objects.Module).AddFunction(fn.Handle())
		}
		return fmt.Sprintf("function #%d", fn.Handle())

	case "table":
		comp, err := m.resolve(args, 0, wasmgc.KindCompartment)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		size := 4
		if len(args) > 1 {
			if n, err := strconv.Atoi(args[1]); err == nil {
				size = n
			}
		}
		table, err := objects.NewTable(m.heap, comp, size)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		return fmt.Sprintf("table #%d (%d slots)", table.Handle(), table.Len())

	case "mem":
		comp, err := m.resolve(args, 0, wasmgc.KindCompartment)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		mem, err := objects.NewMemory(m.heap, comp, 1)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		return fmt.Sprintf("memory #%d (%d pages)", mem.Handle(), mem.Pages())

	case "ex":
		tag := "exception"
		if len(args) > 0 {
			tag = args[0]
		}
		et, err := objects.NewExceptionType(m.heap, tag)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		return fmt.Sprintf("exception type #%d (%s)", et.Handle(), et.Tag())

	case "set":
		table, err := m.resolve(args, 0, wasmgc.KindTable)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		if len(args) < 3 {
			return errorStyle.Render("usage: set <table> <index> <ref>")
		}
		idx, err := strconv.Atoi(args[1])
		if err != nil {
			return errorStyle.Render("bad index: " + args[1])
		}
		ref, err := m.parseHandle(args[2])
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		obj, _ := m.heap.Get(table)
		if err := obj.(*objects.Table).Set(idx, ref); err != nil {
			return errorStyle.Render(err.Error())
		}
		return fmt.Sprintf("table #%d[%d] = #%d", table, idx, ref)

	case "pin":
		h, err := m.parseArg(args)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		if err := m.heap.Pin(h); err != nil {
			return errorStyle.Render(err.Error())
		}
		return fmt.Sprintf("#%d pinned (count %d)", h, m.heap.PinCount(h))

	case "unpin":
		h, err := m.parseArg(args)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		if err := m.heap.Unpin(h); err != nil {
			return errorStyle.Render(err.Error())
		}
		return fmt.Sprintf("#%d unpinned (count %d)", h, m.heap.PinCount(h))

	case "collect":
		metrics := m.heap.Collect()
		return metricStyle.Render(fmt.Sprintf("%.2fms, %d roots, %d objects, %d garbage",
			float64(metrics.Duration.Microseconds())/1000.0,
			metrics.Roots, metrics.Total, metrics.Garbage))

	case "stats":
		counts := map[wasmgc.Kind]int{}
		m.heap.Each(func(_ wasmgc.Handle, obj wasmgc.Object) bool {
			counts[obj.Kind()]++
			return true
		})
		var parts []string
		for k := wasmgc.KindFunction; k <= wasmgc.KindExceptionType; k++ {
			if counts[k] > 0 {
				parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
			}
		}
		if len(parts) == 0 {
			return "heap is empty"
		}
		return fmt.Sprintf("%d objects: %s", m.heap.Len(), strings.Join(parts, " "))

	default:
		return errorStyle.Render("unknown command: " + cmd)
	}
}

// resolve parses args[i] as a handle and checks the object's kind.
func (m *inspectorModel) resolve(args []string, i int, want wasmgc.Kind) (wasmgc.Handle, error) {
	if len(args) <= i {
		return wasmgc.Null, fmt.Errorf("missing %s handle", want)
	}
	h, err := m.parseHandle(args[i])
	if err != nil {
		return wasmgc.Null, err
	}
	obj, ok := m.heap.Get(h)
	if !ok {
		return wasmgc.Null, fmt.Errorf("#%d is not registered", h)
	}
	if obj.Kind() != want {
		return wasmgc.Null, fmt.Errorf("#%d is a %s, want %s", h, obj.Kind(), want)
	}
	return h, nil
}

func (m *inspectorModel) parseArg(args []string) (wasmgc.Handle, error) {
	if len(args) == 0 {
		return wasmgc.Null, fmt.Errorf("missing handle")
	}
	return m.parseHandle(args[0])
}

func (m *inspectorModel) parseHandle(s string) (wasmgc.Handle, error) {
	s = strings.TrimPrefix(s, "#")
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return wasmgc.Null, fmt.Errorf("bad handle: %s", s)
	}
	return wasmgc.Handle(n), nil
}

const helpText = `commands:
  comp                      new compartment
  mod <comp>                new module in compartment
  fn <mod> [name]           new function in module
  table <comp> [size]       new table
  mem <comp>                new 1-page memory
  ex [tag]                  new exception type
  set <table> <idx> <ref>   store ref in table slot
  pin <h> / unpin <h>       adjust root pins
  collect                   run a collection cycle
  stats                     per-kind object counts
  quit                      exit`

func (m *inspectorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("wasm-gc inspector"))
	b.WriteString("\n\n")

	for _, line := range m.history {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter run • ctrl+c quit"))

	return b.String()
}
