package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nerf-sim/nerf-sim/config"
	"github.com/nerf-sim/nerf-sim/dags"
	"github.com/nerf-sim/nerf-sim/instrument"
	"github.com/nerf-sim/nerf-sim/opsched"
)

type timingReport struct {
	Opsched []instrument.PhaseTiming `json:"opsched"`
	Dags    []instrument.PhaseTiming `json:"dags"`
}

var (
	alpha      float64
	beta       float64
	bwFloor    bool
	showTiming bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the full pipeline: map, operator-level schedule, system-level schedule",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		mapped, err := runMap()
		if err != nil {
			logrus.Fatalf("schedule: map: %s", err)
		}

		hw, err := config.LoadHardwareConfig(hwPath)
		if err != nil {
			logrus.Fatalf("schedule: %s", err)
		}

		opStage := opsched.New(hw, nil)
		opStage.Instrumented = showTiming
		opScheduled, opStats, err := opStage.Schedule(mapped)
		if err != nil {
			logrus.Fatalf("schedule: operator-level: %s", err)
		}

		sysStage := dags.New(dags.Weights{Alpha: alpha, Beta: beta})
		if bwFloor && hw.MemoryHierarchy != nil {
			sysStage = sysStage.WithMemoryBandwidthFloor(hw.MemoryHierarchy, hw.ClockHz())
		}
		sysStage.Instrumented = showTiming
		schedule, sysStats, err := sysStage.Schedule(opScheduled)
		if err != nil {
			logrus.Fatalf("schedule: system-level: %s", err)
		}

		result := struct {
			Schedule    any `json:"schedule"`
			OpStats     any `json:"operator_stats"`
			SystemStats any `json:"system_stats"`
			Timing      any `json:"timing,omitempty"`
		}{
			Schedule:    schedule,
			OpStats:     opStats,
			SystemStats: sysStats,
		}
		if showTiming {
			result.Timing = timingReport{
				Opsched: opStage.Timing().Phases,
				Dags:    sysStage.Timing().Phases,
			}
		}
		printJSON(result)
	},
}

func init() {
	scheduleCmd.Flags().Float64Var(&alpha, "alpha", 0.6, "DAGS scoring weight for successor count")
	scheduleCmd.Flags().Float64Var(&beta, "beta", 0.4, "DAGS scoring weight for critical resource impact")
	scheduleCmd.Flags().BoolVar(&bwFloor, "bandwidth-floor", false, "apply the optional memory-bandwidth duration floor before placement")
	scheduleCmd.Flags().BoolVar(&showTiming, "timing", false, "record and print per-phase wall-clock timing")
}
