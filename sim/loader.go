// CSV instance loading. Peripheral to the GP/simulator core (spec §1) but
// part of the complete repository: the same encoding/csv + strconv.Parse
// pattern the teacher uses in generateWorkloadFromCSV (sim/workload_config.go).

package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// fixedServiceTime is assigned to every request loaded from CSV (spec §6).
const fixedServiceTime = 10.0

// LoadProblemCSV reads a DVRPTW instance from path. One header line,
// then one row per request: x, y, demand, open_time, close_time, _, _,
// arrival_time, ... (fields 5 and 6 ignored). The first data row is the
// depot; subsequent rows are customers in file order, indices assigned
// sequentially with the depot at 0.
func LoadProblemCSV(path string, speed, capacity float64, numTrucks int) (*Problem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening problem csv: %w", err)
	}
	defer file.Close() //nolint:errcheck // read-only file; close error is not actionable

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("reading problem csv header: %w", err)
	}

	var requests []*Request
	idx := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading problem csv row %d: %w", idx, err)
		}

		req, err := parseRequestRow(record, idx)
		if err != nil {
			return nil, fmt.Errorf("parsing problem csv row %d: %w", idx, err)
		}
		requests = append(requests, req)
		idx++
	}

	if len(requests) == 0 {
		return nil, fmt.Errorf("problem csv %s has no data rows", path)
	}

	return &Problem{
		Depot:     requests[0],
		Customers: requests[1:],
		Speed:     speed,
		Capacity:  capacity,
		NumTrucks: numTrucks,
	}, nil
}

func parseRequestRow(record []string, idx int) (*Request, error) {
	if len(record) < 8 {
		return nil, fmt.Errorf("row has %d columns, expected at least 8", len(record))
	}

	x, err := strconv.ParseFloat(record[0], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid y: %w", err)
	}
	demand, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid demand: %w", err)
	}
	open, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid open_time: %w", err)
	}
	close, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid close_time: %w", err)
	}
	// record[5], record[6] ignored.
	arrival, err := strconv.ParseFloat(record[7], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid arrival_time: %w", err)
	}

	return &Request{
		Idx:     idx,
		X:       x,
		Y:       y,
		Demand:  demand,
		Open:    open,
		Close:   close,
		Service: fixedServiceTime,
		Arrival: arrival,
	}, nil
}
