package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/go-mclib/inventory/pkg/helpers"
	"github.com/go-mclib/inventory/pkg/item"
)

var (
	demoKind  string
	demoOffer int
	demoPoll  int
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Offer and poll a stack against an archetype",
	Long:  `Open the selected archetype in a window, offer a stack into it, poll part of it back and print every slot change the window reports.`,
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&demoKind, "kind", "minecraft:stone", "item kind to offer")
	demoCmd.Flags().IntVar(&demoOffer, "offer", 70, "quantity to offer")
	demoCmd.Flags().IntVar(&demoPoll, "poll", 65, "quantity to poll back")
}

// printViewer writes every flushed slot change to w.
type printViewer struct {
	w io.Writer
}

func (v printViewer) SlotChanged(windowID int32, index int, stack *item.Stack) {
	fmt.Fprintf(v.w, "  window %d slot %d -> %s\n", windowID, index, stack)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	s, err := helpers.NewSession(flags, log.New(out, "", 0))
	if err != nil {
		return err
	}
	defer s.Close()

	kind, ok := s.Items.Lookup(demoKind)
	if !ok {
		return fmt.Errorf("unknown item %q", demoKind)
	}
	s.Window.AddViewer(printViewer{w: out})

	fmt.Fprintf(out, "%s (%s, capacity %d)\n", s.Window.Title(), s.Opened.Archetype(), s.Opened.Capacity())

	res := s.Opened.Offer(item.NewStack(kind, demoOffer))
	fmt.Fprintf(out, "offer %s: %s\n", item.NewStack(kind, demoOffer), res)
	s.Window.Flush()

	polled := s.Opened.PollN(demoPoll, item.OfKind(kind))
	fmt.Fprintf(out, "poll %d: %s\n", demoPoll, polled)
	s.Window.Flush()

	fmt.Fprintf(out, "left: %d in %d slot(s), state %d\n", s.Opened.TotalQuantity(), s.Opened.Size(), s.Window.StateID())
	return nil
}
