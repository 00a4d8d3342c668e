package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"heart-triage-agent/internal/agent"
	"heart-triage-agent/internal/config"
	"heart-triage-agent/internal/report"
	"heart-triage-agent/internal/triage"
)

type assessOptions struct {
	seed       uint64
	ecgMode    string
	profile    string
	reportPath string
	fontPath   string
	asJSON     bool
}

func newAssessCmd(root *rootOptions) *cobra.Command {
	opts := &assessOptions{}
	cmd := &cobra.Command{
		Use:   "assess [symptoms...]",
		Short: "Triage a free-text symptom description",
		Long: `Runs the triage pipeline once and prints the diagnosis and treatment plan.
Without arguments the symptoms are read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			symptoms := strings.Join(args, " ")
			if len(args) == 0 {
				var err error
				symptoms, err = promptSymptoms(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}
			return runAssess(cmd.Context(), cmd.OutOrStdout(), root, opts, symptoms)
		},
	}
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "RNG seed for the probabilistic analyzers (0 = clock)")
	cmd.Flags().StringVar(&opts.ecgMode, "ecg-mode", string(agent.ECGModeCoupled), "ECG analyzer: coupled or random")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "YAML patient profile (default: built-in demo patient)")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Write a PDF report to this path")
	cmd.Flags().StringVar(&opts.fontPath, "font", "", "TTF font used for the PDF report")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the full result as JSON")
	return cmd
}

func promptSymptoms(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter symptoms: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read symptoms: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func runAssess(ctx context.Context, out io.Writer, root *rootOptions, opts *assessOptions, symptoms string) error {
	req := triage.Request{Symptoms: symptoms}
	if err := req.Validate(); err != nil {
		return err
	}

	mode, err := agent.ParseECGMode(opts.ecgMode)
	if err != nil {
		return err
	}
	patient, err := config.LoadPatient(opts.profile)
	if err != nil {
		return err
	}

	svc := triage.NewService(agent.NewAnalyzers(mode, agent.NewRandomSource(opts.seed)), patient, root.logger)
	res := svc.Process(ctx, req)

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Potential Conditions: %s\n", conditionList(res.Conditions))
		fmt.Fprintf(out, "Diagnosis: %s\n", res.Diagnosis)
		fmt.Fprintf(out, "Treatment Plan: %s\n", res.TreatmentPlan)
	}

	if opts.reportPath != "" {
		var fonts []string
		if opts.fontPath != "" {
			fonts = append(fonts, opts.fontPath)
		}
		pdf, err := report.Render(res, append(fonts, report.DefaultFontPaths...))
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		if err := os.WriteFile(opts.reportPath, pdf, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(out, "Report written to %s\n", opts.reportPath)
	}
	return nil
}

func conditionList(conds []triage.Condition) string {
	names := make([]string, len(conds))
	for i, c := range conds {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
