package dags

import "gonum.org/v1/gonum/stat"

// Stats is the per-stage statistics record produced alongside a
// SystemSchedule (§4.3).
type Stats struct {
	SchedulingEfficiency  float64
	ResourceBalanceFactor float64
	ReadyQueuePeakSize    int
	PerUnitUtilization    map[string]float64
}

// schedulingEfficiency = sum of durations / (total_cycles * number_of_units).
func schedulingEfficiency(unitDurationSum map[string]int64, totalCycles int64, numUnits int) float64 {
	if totalCycles <= 0 || numUnits <= 0 {
		return 0
	}
	sum := int64(0)
	for _, d := range unitDurationSum {
		sum += d
	}
	return float64(sum) / (float64(totalCycles) * float64(numUnits))
}

// resourceBalanceFactor = 1 - (stddev of per-unit utilization / mean
// utilization), using gonum/stat for both moments.
func resourceBalanceFactor(perUnitUtil map[string]float64) float64 {
	if len(perUnitUtil) == 0 {
		return 1
	}
	values := make([]float64, 0, len(perUnitUtil))
	for _, u := range perUnitUtil {
		values = append(values, u)
	}
	mean := stat.Mean(values, nil)
	if mean == 0 {
		return 1
	}
	stddev := stat.StdDev(values, nil)
	return 1 - (stddev / mean)
}

// averageUtilization is the mean per-unit utilization.
func averageUtilization(perUnitUtil map[string]float64) float64 {
	if len(perUnitUtil) == 0 {
		return 0
	}
	values := make([]float64, 0, len(perUnitUtil))
	for _, u := range perUnitUtil {
		values = append(values, u)
	}
	return stat.Mean(values, nil)
}
