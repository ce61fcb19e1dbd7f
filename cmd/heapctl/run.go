package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/heapkit/heapkit/heap"
	"github.com/heapkit/heapkit/heap/alloc"
)

var (
	runCheck bool
	runDump  bool
	runLimit int
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().BoolVar(&runCheck, "check", false, "Run the consistency checker after every operation")
	cmd.Flags().BoolVar(&runDump, "dump", false, "Print a block-by-block heap trace after the run")
	cmd.Flags().IntVar(&runLimit, "limit", 0, "Cap the heap region at this many bytes (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <trace>",
		Short: "Replay an allocation trace against a fresh allocator",
		Long: `The run command replays a workload trace file against a fresh
allocator and reports heap statistics and utilization.

Trace files hold one operation per line: "a <id> <size>" allocates,
"r <id> <size>" reallocates, "f <id>" frees. Lines starting with '#'
are comments.

Example:
  heapctl run workload.trace
  heapctl run workload.trace --check --dump
  heapctl run workload.trace --limit 1048576`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(args[0])
		},
	}
}

func runTrace(path string) error {
	ops, err := parseTraceFile(path)
	if err != nil {
		return err
	}
	a, err := alloc.New(heap.NewSliceRegion(runLimit))
	if err != nil {
		return err
	}

	refs := make(map[int]alloc.Ref)
	inUse := 0
	peak := 0

	for _, op := range ops {
		switch op.kind {
		case opAlloc:
			if _, ok := refs[op.id]; ok {
				return fmt.Errorf("%s:%d: id %d is already live", path, op.line, op.id)
			}
			ref, allocErr := a.Alloc(op.size)
			if allocErr != nil {
				return fmt.Errorf("%s:%d: alloc %d: %w", path, op.line, op.size, allocErr)
			}
			refs[op.id] = ref
			inUse += a.PayloadSize(ref)
			printVerbose("%s:%d: a %d -> %#x (%d bytes)\n",
				path, op.line, op.id, ref, a.PayloadSize(ref))

		case opRealloc:
			ref, ok := refs[op.id]
			if !ok {
				return fmt.Errorf("%s:%d: id %d is not live", path, op.line, op.id)
			}
			inUse -= a.PayloadSize(ref)
			newRef, reallocErr := a.Realloc(ref, op.size)
			if reallocErr != nil {
				return fmt.Errorf("%s:%d: realloc %d: %w", path, op.line, op.size, reallocErr)
			}
			if op.size == 0 {
				delete(refs, op.id)
			} else {
				refs[op.id] = newRef
				inUse += a.PayloadSize(newRef)
			}
			printVerbose("%s:%d: r %d -> %#x\n", path, op.line, op.id, newRef)

		case opFree:
			ref, ok := refs[op.id]
			if !ok {
				return fmt.Errorf("%s:%d: id %d is not live", path, op.line, op.id)
			}
			inUse -= a.PayloadSize(ref)
			if freeErr := a.Free(ref); freeErr != nil {
				return fmt.Errorf("%s:%d: free: %w", path, op.line, freeErr)
			}
			delete(refs, op.id)
			printVerbose("%s:%d: f %d\n", path, op.line, op.id)
		}

		if inUse > peak {
			peak = inUse
		}
		if runCheck && !a.CheckHeap(fmt.Sprintf("%s:%d", path, op.line)) {
			return fmt.Errorf("%s:%d: consistency check failed", path, op.line)
		}
	}

	printStats(a, len(ops), peak, len(refs))
	if runDump {
		a.DumpHeap(os.Stdout)
	}
	return nil
}

func printStats(a *alloc.Allocator, ops, peak, leaked int) {
	if quiet {
		return
	}
	st := a.Stats()
	p := message.NewPrinter(language.English)
	p.Printf("operations:  %d (%d alloc, %d free, %d realloc)\n",
		ops, st.AllocCalls, st.FreeCalls, st.ReallocCalls)
	p.Printf("heap size:   %d bytes granted in %d grows\n", a.HeapSize(), st.GrowCalls)
	p.Printf("peak in use: %d bytes\n", peak)
	p.Printf("free now:    %d bytes in %d blocks\n", a.FreeBytes(), a.FreeBlocks())
	p.Printf("splits:      %d, coalesces: %d forward / %d backward\n",
		st.SplitCount, st.CoalesceForward, st.CoalesceBackward)
	if a.HeapSize() > 0 {
		p.Printf("utilization: %.1f%% (peak payload / heap size)\n",
			100*float64(peak)/float64(a.HeapSize()))
	}
	if leaked > 0 {
		printInfo("note: %d handles still live at end of trace\n", leaked)
	}
	printInfo("heap fingerprint: %#016x\n", a.Fingerprint())
}
