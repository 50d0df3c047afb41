package bench

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Suite is a YAML description of a benchmark session: which cases to run,
// the run policy and the output path. Flags of cmd/bench cover the same
// surface; a suite file wins when both are given.
type Suite struct {
	Out      string `yaml:"out"`
	Runs     int    `yaml:"runs"`
	BaseSeed int64  `yaml:"base_seed"`

	// PerRunTimeoutMs is in milliseconds; 0 means no timeout.
	PerRunTimeoutMs int64 `yaml:"per_run_timeout_ms"`

	Cases []SuiteCase `yaml:"cases"`
}

// PerRunTimeout returns the per-run timeout as a duration.
func (s Suite) PerRunTimeout() time.Duration {
	return time.Duration(s.PerRunTimeoutMs) * time.Millisecond
}

type SuiteCase struct {
	Jobs         int    `yaml:"jobs"`
	Machines     int    `yaml:"machines"`
	InstanceSeed int64  `yaml:"instance_seed"`
	Path         string `yaml:"path"`
}

func (sc SuiteCase) toCase() Case {
	return Case{
		Jobs:         sc.Jobs,
		Machines:     sc.Machines,
		InstanceSeed: sc.InstanceSeed,
		Path:         sc.Path,
	}
}

func (s Suite) Validate() error {
	if s.Runs < 1 {
		return fmt.Errorf("runs must be >= 1 (got %d)", s.Runs)
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("suite has no cases")
	}
	for i, c := range s.Cases {
		if c.Path == "" && (c.Jobs < 1 || c.Machines < 1) {
			return fmt.Errorf("case %d: either path or jobs/machines must be set", i)
		}
	}
	return nil
}

// CaseList returns the suite cases as runner cases.
func (s Suite) CaseList() []Case {
	cases := make([]Case, 0, len(s.Cases))
	for _, c := range s.Cases {
		cases = append(cases, c.toCase())
	}
	return cases
}

func LoadSuite(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, err
	}
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Suite{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Suite{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
