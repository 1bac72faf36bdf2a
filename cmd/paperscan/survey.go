package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Laam24/research-paper-extractor/internal/httputil"
	"github.com/Laam24/research-paper-extractor/internal/pipeline"
	"github.com/Laam24/research-paper-extractor/internal/report"
	"github.com/Laam24/research-paper-extractor/internal/search"
	"github.com/Laam24/research-paper-extractor/pkg/types"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultPageDelay      = 2 * time.Second
	defaultCandidateDelay = 2 * time.Second
	defaultPapersDir      = "papers"
	defaultCount          = 15
	defaultOutputFile     = "scholar_results.txt"
)

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Run the full pipeline: search, download, and extract metrics",
	Long: `Survey searches for papers on a topic, downloads the open-access PDFs one
at a time, extracts evaluation metrics from each, and writes the report.
Topic, paper count, and output file fall back to interactive prompts when
their flags are not given.`,
	RunE: runSurvey,
}

func init() {
	surveyCmd.Flags().String("topic", "", "search topic (prompted for when empty)")
	surveyCmd.Flags().Int("count", 0, fmt.Sprintf("number of papers to collect (prompted for when not given, default %d)", defaultCount))
	surveyCmd.Flags().String("output", "", fmt.Sprintf("report file (prompted for when empty, default %s)", defaultOutputFile))
	surveyCmd.Flags().String("papers-dir", "", "base directory for downloaded papers (default papers)")
	surveyCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	surveyCmd.Flags().Duration("delay", 0, "delay between consecutive candidates (default 2s)")

	rootCmd.AddCommand(surveyCmd)
}

func runSurvey(cmd *cobra.Command, args []string) error {
	prompts := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		topic = promptString(prompts, out, "Enter search topic: ", "")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return fmt.Errorf("no search topic given")
	}

	count, _ := cmd.Flags().GetInt("count")
	if !cmd.Flags().Changed("count") {
		count = promptInt(prompts, out, fmt.Sprintf("Number of papers to find [%d]: ", defaultCount), defaultCount)
	}
	if count < 0 {
		return fmt.Errorf("paper count must not be negative")
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = promptString(prompts, out,
			fmt.Sprintf("Save results to file [%s]: ", defaultOutputFile), defaultOutputFile)
	}

	// Zero papers requested: write the empty report and stop before the
	// search stage, so the run makes no network calls at all.
	if count == 0 {
		rep, err := report.NewWriter(output, report.Header{
			Query:       topic,
			GeneratedAt: time.Now(),
		})
		if err != nil {
			return err
		}
		if err := rep.Close(0, 0); err != nil {
			return err
		}
		fmt.Fprintf(out, "Report written to %s\n", output)
		return nil
	}

	cfg := pipelineConfig(cmd, output)

	// Collect a pool larger than the target: many results will have no
	// open-access PDF and get skipped.
	searchCfg := cfg.Search
	searchCfg.MaxResults = count * 5

	client := httputil.NewClient(searchCfg.HTTPConfig)
	backends := []search.Backend{
		&search.ScholarBackend{Client: client},
		&search.ArxivBackend{Client: client},
	}

	fmt.Fprintf(out, "Searching for: %s\n", topic)
	found, err := search.Search(cmd.Context(), topic, backends, searchCfg, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d candidate result(s)\n\n", len(found.Results))

	rep, err := report.NewWriter(output, report.Header{
		Query:       topic,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	sum, runErr := pipeline.New(cfg, rep, out).Run(found.Results, count)
	closeErr := rep.Close(sum.Accepted, sum.Attempted)
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return closeErr
	}

	fmt.Fprintf(out, "Report written to %s\n", output)
	return nil
}

// pipelineConfig assembles the run configuration from flags, config file
// values, and defaults, in that order of precedence.
func pipelineConfig(cmd *cobra.Command, output string) types.PipelineConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viperDuration("timeout", defaultTimeout)
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = viperDuration("candidate_delay", defaultCandidateDelay)
	}
	papersDir, _ := cmd.Flags().GetString("papers-dir")
	if papersDir == "" {
		papersDir = viperString("papers_dir", defaultPapersDir)
	}

	httpCfg := types.HTTPConfig{
		Timeout:   timeout,
		UserAgent: viperString("user_agent", httputil.DefaultUserAgent),
	}
	return types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig: httpCfg,
			PageDelay:  viperDuration("page_delay", defaultPageDelay),
		},
		Fetch: types.FetchConfig{
			HTTPConfig: httpCfg,
			PapersDir:  papersDir,
		},
		CandidateDelay: delay,
		OutputFile:     output,
	}
}

// promptString prints label and reads one trimmed line, returning fallback
// on empty input or EOF.
func promptString(r *bufio.Reader, w io.Writer, label, fallback string) string {
	fmt.Fprint(w, label)
	line, _ := r.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

// promptInt is promptString for integers; unparsable input yields fallback.
func promptInt(r *bufio.Reader, w io.Writer, label string, fallback int) int {
	s := promptString(r, w, label, "")
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
