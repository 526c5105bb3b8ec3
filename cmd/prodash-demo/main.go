// Command prodash-demo wires a handful of concurrent producers to both
// bundled renderers, so the module is directly runnable and exercises
// every package end to end.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/mobanhawi/prodash/progress"
	"github.com/mobanhawi/prodash/render/line"
	"github.com/mobanhawi/prodash/render/tui"
	"github.com/mobanhawi/prodash/unit"
)

func main() {
	renderer := "line"
	if len(os.Args) > 1 {
		renderer = os.Args[1]
	}

	logger := charmlog.New(os.Stderr)
	root := progress.New(progress.Options{Logger: logger})

	done := make(chan struct{})
	go runProducers(root, done)

	switch renderer {
	case "tui":
		h, err := tui.Render(root, tui.Options{Title: "prodash-demo", Throughput: true})
		if err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
		<-done
		if err := h.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
	default:
		h, err := line.Render(root, line.Options{Throughput: true, DoneMessage: "done."})
		if err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
		<-done
		h.Stop()
	}
}

// runProducers simulates a small build pipeline: a download task with a
// known byte total, a handful of per-file compile subtasks, and an
// indeterminate cleanup task, closing done once everything finishes.
func runProducers(root *progress.Root, done chan struct{}) {
	defer close(done)

	download := root.AddChild("download")
	max := uint64(20 << 20)
	download.Init(&max, unit.Bytes{Throughput: true})
	for step := uint64(0); step < max; step += 1 << 20 {
		download.IncBy(1 << 20)
		time.Sleep(50 * time.Millisecond)
	}
	download.Done("fetched archive")
	download.Close()

	compile := root.AddChild("compile")
	files := uint64(12)
	compile.Init(&files, unit.Dynamic{Label: "files"})
	for i := uint64(0); i < files; i++ {
		child := compile.AddChild(fmt.Sprintf("file-%02d.go", i)).(*progress.Item)
		child.Message(progress.Info, "compiling")
		time.Sleep(time.Duration(80+rand.Intn(120)) * time.Millisecond)
		if rand.Intn(10) == 0 {
			child.Fail("syntax error")
		} else {
			child.Done()
		}
		child.Close()
		compile.IncBy(1)
	}
	compile.Done()
	compile.Close()

	cleanup := root.AddChild("cleanup")
	cleanup.Blocked("waiting for compile lock", nil)
	time.Sleep(200 * time.Millisecond)
	cleanup.Init(nil, unit.Static{Label: "items removed", Mode: unit.ModeCount})
	for i := 0; i < 5; i++ {
		cleanup.IncBy(1)
		time.Sleep(60 * time.Millisecond)
	}
	cleanup.Done("workspace clean")
	cleanup.Close()
}
