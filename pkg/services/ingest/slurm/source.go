package slurm

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rc-tools/cost-ledger/pkg/models/domain"
	"github.com/rc-tools/cost-ledger/pkg/services/config"
	"github.com/rc-tools/cost-ledger/pkg/services/ingest"
)

// sacct --parsable2 --noheader row layout:
// JobID|Account|Partition|AllocCPUS|Elapsed|State
const fieldCount = 6

var defaultStates = []string{"COMPLETED", "TIMEOUT", "CANCELLED"}

// Source reads compute usage from a Slurm accounting dump or from the
// accounting command itself.
type Source struct {
	name    string
	input   string
	command string
	states  []string
}

func NewFromProfile(profile config.SourceProfile) (ingest.Source, error) {
	if profile.Input == "" && profile.Command == "" {
		return nil, fmt.Errorf("profile %s needs an input file or an accounting command", profile.Name)
	}

	states := profile.States
	if len(states) == 0 {
		states = defaultStates
	}
	normalized := make([]string, 0, len(states))
	for _, state := range states {
		normalized = append(normalized, strings.ToUpper(strings.TrimSpace(state)))
	}

	return &Source{
		name:    profile.Name,
		input:   profile.Input,
		command: profile.Command,
		states:  normalized,
	}, nil
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Kind() domain.UsageKind {
	return domain.UsageKindCompute
}

func (s *Source) Collect(ctx context.Context, period domain.Period, rates domain.RateConfig) (*domain.IngestResult, error) {
	if s.command != "" {
		out, err := s.runAccounting(ctx, period)
		if err != nil {
			return nil, err
		}
		return s.parse(bytes.NewReader(out), rates)
	}

	f, err := os.Open(s.input)
	if err != nil {
		return nil, fmt.Errorf("failed to open accounting dump: %w", err)
	}
	defer f.Close()

	return s.parse(f, rates)
}

func (s *Source) runAccounting(ctx context.Context, period domain.Period) ([]byte, error) {
	args := []string{
		"--allocations", "--noheader", "--parsable2",
		"--format", "JobID,Account,Partition,AllocCPUS,Elapsed,State",
		"--starttime", period.Start.Format("2006-01-02"),
		"--endtime", period.End.AddDate(0, 0, 1).Format("2006-01-02"),
	}

	out, err := exec.CommandContext(ctx, s.command, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("accounting command failed: %w: %s", err, bytes.TrimSpace(exitErr.Stderr))
		}
		return nil, fmt.Errorf("accounting command failed: %w", err)
	}
	return out, nil
}

func (s *Source) parse(r io.Reader, rates domain.RateConfig) (*domain.IngestResult, error) {
	res := &domain.IngestResult{}
	unknownClasses := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) != fieldCount {
			res.Skipped++
			res.Warnings = append(res.Warnings, domain.Warning{
				Kind:    domain.WarningInvalidUsage,
				Message: fmt.Sprintf("line %d: expected %d fields, got %d", lineNo, fieldCount, len(fields)),
			})
			continue
		}

		jobID, account, partition := fields[0], fields[1], fields[2]

		// Step rows (123.batch, 123.extern) duplicate the allocation row.
		if strings.Contains(jobID, ".") {
			continue
		}
		if !s.billable(fields[5]) {
			res.Skipped++
			continue
		}
		if account == "" {
			res.Skipped++
			res.Warnings = append(res.Warnings, domain.Warning{
				Kind:    domain.WarningInvalidUsage,
				Message: fmt.Sprintf("line %d: job %s has no account", lineNo, jobID),
			})
			continue
		}

		units, err := strconv.Atoi(fields[3])
		if err != nil || units < 0 {
			res.Skipped++
			res.Warnings = append(res.Warnings, domain.Warning{
				Kind:    domain.WarningInvalidUsage,
				Message: fmt.Sprintf("job %s: unparseable allocated units %q", jobID, fields[3]),
			})
			continue
		}

		hours, err := ParseElapsed(fields[4])
		if err != nil {
			res.Skipped++
			res.Warnings = append(res.Warnings, domain.Warning{
				Kind:    domain.WarningInvalidUsage,
				Message: fmt.Sprintf("job %s: %v", jobID, err),
			})
			continue
		}

		multiplier := 1.0
		if mod, ok := rates.Modifier(partition); ok {
			multiplier = mod.Multiplier
		} else if _, seen := unknownClasses[partition]; !seen {
			unknownClasses[partition] = struct{}{}
			res.Warnings = append(res.Warnings, domain.Warning{
				Kind:    domain.WarningUnknownResourceClass,
				Message: fmt.Sprintf("partition %q has no configured modifier, using multiplier 1", partition),
			})
		}

		res.Records = append(res.Records, domain.UsageRecord{
			EntityKey:     account,
			ResourceClass: partition,
			Quantity:      float64(units) * hours * multiplier,
			Kind:          domain.UsageKindCompute,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounting dump: %w", err)
	}

	return res, nil
}

// billable reports whether a job state counts for billing. States are prefix
// matched so that "CANCELLED by 1234" matches CANCELLED.
func (s *Source) billable(state string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(state))
	for _, billable := range s.states {
		if strings.HasPrefix(normalized, billable) {
			return true
		}
	}
	return false
}
