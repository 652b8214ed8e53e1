// Package main is the entry point for gcmon, a CLI for exercising and
// inspecting the wasm-gc collector.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-gc/engine"
	"github.com/wippyai/wasm-gc/gc"
	"github.com/wippyai/wasm-gc/objects"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	metricStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gcmon",
	Short: "Exercise and inspect the wasm-gc collector",
	Long: `gcmon builds object graphs on a wasm-gc heap, pins roots, runs
collection cycles, and reports the collector's metrics.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			if l, err := zap.NewDevelopment(); err == nil {
				gc.SetLogger(l)
				engine.SetLogger(l)
			}
		}
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build a sample object graph and run collections",
	RunE:  runDemo,
}

var loadCmd = &cobra.Command{
	Use:   "load <file.wasm>",
	Short: "Load a wasm binary into a heap and collect it",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log collector internals")
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(tuiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func printMetrics(label string, m gc.Metrics) {
	fmt.Printf("%s %s\n",
		labelStyle.Render(label+":"),
		metricStyle.Render(fmt.Sprintf("%.2fms, %d roots, %d objects, %d garbage",
			float64(m.Duration.Microseconds())/1000.0, m.Roots, m.Total, m.Garbage)),
	)
}

func runDemo(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("wasm-gc demo"))

	heap := gc.NewHeap()
	defer heap.Close()

	comp, err := objects.NewCompartment(heap)
	if err != nil {
		return err
	}
	mod, err := objects.NewModule(heap, comp.Handle())
	if err != nil {
		return err
	}
	fn, err := objects.NewFunction(heap, mod.Handle(), "main")
	if err != nil {
		return err
	}
	mod.AddFunctionDef(fn.Handle())
	mod.AddFunction(fn.Handle())

	table, err := objects.NewTable(heap, comp.Handle(), 4)
	if err != nil {
		return err
	}
	if err := table.Set(0, fn.Handle()); err != nil {
		return err
	}
	mod.AddTable(table.Handle())
	mod.SetDefaultTable(table.Handle())

	mem, err := objects.NewMemory(heap, comp.Handle(), 1)
	if err != nil {
		return err
	}
	mod.AddMemory(mem.Handle())
	mod.SetDefaultMemory(mem.Handle())

	global, err := objects.NewGlobal(heap, comp.Handle(), 42, true)
	if err != nil {
		return err
	}
	mod.AddGlobal(global.Handle())

	if err := heap.Pin(comp.Handle()); err != nil {
		return err
	}
	if err := heap.Pin(mod.Handle()); err != nil {
		return err
	}
	printMetrics("roots pinned", heap.Collect())

	// Orphans with neither pins nor incoming edges go on the next cycle.
	for i := 0; i < 3; i++ {
		if _, err := objects.NewExceptionType(heap, fmt.Sprintf("tag-%d", i)); err != nil {
			return err
		}
	}
	printMetrics("orphans created", heap.Collect())

	if err := heap.Unpin(mod.Handle()); err != nil {
		return err
	}
	printMetrics("module unpinned", heap.Collect())

	if err := heap.Unpin(comp.Handle()); err != nil {
		return err
	}
	printMetrics("compartment unpinned", heap.Collect())

	fmt.Println(helpStyle.Render(fmt.Sprintf("%d objects remain", heap.Len())))
	return nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	heap := gc.NewHeap()
	defer heap.Close()

	eng := engine.New(ctx, heap)
	defer eng.Close(ctx)

	comp, err := objects.NewCompartment(heap)
	if err != nil {
		return err
	}
	mod, err := eng.Load(ctx, comp, data)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", labelStyle.Render("module:"),
		fmt.Sprintf("handle %d, %d functions", mod.Handle(), len(mod.Functions())))

	if err := heap.Pin(mod.Handle()); err != nil {
		return err
	}
	printMetrics("module pinned", heap.Collect())

	if err := heap.Unpin(mod.Handle()); err != nil {
		return err
	}
	printMetrics("module unpinned", heap.Collect())
	return nil
}
