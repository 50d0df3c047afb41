package bench

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"flowShopIG/internal/flowshop"
)

// ReadInstance parses a benchmark instance in the common literature layout
// (Taillard, VRF): the first line carries instance metadata and is
// discarded; every following non-empty line is one job row of alternating
// machine-index / processing-time pairs.
func ReadInstance(r io.Reader) (*flowshop.Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty instance file")
	}

	var procTimes []int
	jobs := 0
	machines := 0

	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields)%2 != 0 {
			return nil, fmt.Errorf("job row %d: odd number of values %d (want machine/time pairs)", jobs+1, len(fields))
		}
		rowMachines := len(fields) / 2
		if machines == 0 {
			machines = rowMachines
		} else if rowMachines != machines {
			return nil, fmt.Errorf("job row %d: %d machines (want %d)", jobs+1, rowMachines, machines)
		}
		// Every odd field is a processing time, even fields are
		// machine indices and are skipped.
		for i := 1; i < len(fields); i += 2 {
			v, err := strconv.Atoi(fields[i])
			if err != nil {
				return nil, fmt.Errorf("job row %d: bad processing time %q: %w", jobs+1, fields[i], err)
			}
			procTimes = append(procTimes, v)
		}
		jobs++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return flowshop.NewInstance(jobs, machines, procTimes)
}

func ReadInstanceFile(path string) (*flowshop.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inst, err := ReadInstance(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}
