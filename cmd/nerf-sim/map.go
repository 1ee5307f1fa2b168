package main

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nerf-sim/nerf-sim/config"
	"github.com/nerf-sim/nerf-sim/ir"
	"github.com/nerf-sim/nerf-sim/mapping"
)

var augmentEdges bool

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Run the Mapping Engine over an operator graph and hardware config",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		mapped, err := runMap()
		if err != nil {
			logrus.Fatalf("map: %s", err)
		}
		printJSON(mapped)
	},
}

func init() {
	mapCmd.Flags().BoolVar(&augmentEdges, "augment-edges", false, "apply the optional shape-matched dangling-node edge augmentation heuristic before mapping")
}

func runMap() (*ir.MappedIR, error) {
	graph, err := config.LoadOperatorGraph(graphPath)
	if err != nil {
		return nil, err
	}
	hw, err := config.LoadHardwareConfig(hwPath)
	if err != nil {
		return nil, err
	}
	if augmentEdges {
		mapping.AugmentEdges(graph)
	}

	engine := mapping.NewEngine(hw)
	if hintsPath == "" {
		return engine.Map(graph)
	}

	hintDocs, err := config.LoadHints(hintsPath)
	if err != nil {
		return nil, err
	}
	return engine.MapWithHints(graph, config.BuildMappingHints(graph, hintDocs))
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logrus.Fatalf("encode result: %s", err)
	}
	fmt.Println(string(out))
}
