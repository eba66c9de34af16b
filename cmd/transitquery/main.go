// Command transitquery answers earliest-arrival queries over a GTFS-family
// schedule directory (spec.md §6). It follows the corpus's cobra shape —
// tidbyt-gtfs/cmd/main.go's single root command taking the schedule
// directory as its positional argument. With --from, --to and --at it
// answers one query; with none of them it drops into an interactive REPL,
// the way cmd/rebuild-graph/main.go reads a single confirmation line with
// fmt.Scanln before doing its work.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fkmjec/prahadlo/internal/config"
	"github.com/fkmjec/prahadlo/internal/network"
	"github.com/fkmjec/prahadlo/internal/routing"
)

var (
	fromFlag string
	toFlag   string
	atFlag   string
)

var rootCmd = &cobra.Command{
	Use:          "transitquery <gtfs-dir>",
	Short:        "Earliest-arrival queries over a static transit schedule",
	Long:         "Loads a GTFS-family schedule directory, builds the time-expanded graph, and answers earliest-arrival queries.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&fromFlag, "from", "", "origin stop_id")
	rootCmd.Flags().StringVar(&toFlag, "to", "", "destination stop_id")
	rootCmd.Flags().StringVar(&atFlag, "at", "", "departure time of day, HH:MM:SS")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	gtfsDir := args[0]

	log.Println("🚏 transitquery")
	log.Printf("loading schedule from %s...", gtfsDir)

	cfg := config.FromEnv()
	net, err := network.Load(gtfsDir, cfg)
	if err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}
	log.Printf("graph built: %d nodes", net.NodeCount())

	if fromFlag != "" || toFlag != "" || atFlag != "" {
		return runOneShot(net)
	}

	return runREPL(net)
}

func runOneShot(net *network.Network) error {
	if fromFlag == "" || toFlag == "" || atFlag == "" {
		return fmt.Errorf("--from, --to, and --at must all be given together")
	}
	t0, err := parseTimeOfDay(atFlag)
	if err != nil {
		return err
	}
	return answerQuery(net, fromFlag, toFlag, t0)
}

func runREPL(net *network.Network) error {
	fmt.Println("enter queries as: <origin stop_id> <dest stop_id> HH:MM:SS")
	fmt.Println("ctrl-d to exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			fmt.Fprintln(os.Stderr, "expected: <origin> <dest> HH:MM:SS")
			continue
		}

		t0, err := parseTimeOfDay(fields[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if err := answerQuery(net, fields[0], fields[1], t0); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func answerQuery(net *network.Network, origin, dest string, t0 int) error {
	result, err := net.FindConnection(origin, dest, t0)
	if err != nil {
		return err
	}
	if result == nil {
		fmt.Println("unreachable")
		return nil
	}

	fmt.Printf("%d seconds\n", result.Seconds)
	for _, step := range net.Itinerary(result) {
		fmt.Printf("  %s\n", formatStep(step))
	}
	return nil
}

func formatStep(s routing.Step) string {
	switch s.Kind {
	case routing.StepRide:
		return fmt.Sprintf("ride trip %s: %s -> %s", s.TripID, s.FromStop, s.ToStop)
	case routing.StepWait:
		return fmt.Sprintf("wait at %s until next departure", s.FromStop)
	case routing.StepAlight:
		return fmt.Sprintf("transfer at %s", s.FromStop)
	case routing.StepWalk:
		return fmt.Sprintf("walk %s -> %s", s.FromStop, s.ToStop)
	default:
		return fmt.Sprintf("%s -> %s", s.FromStop, s.ToStop)
	}
}

func parseTimeOfDay(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM:SS", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return h*3600 + m*60 + sec, nil
}
