package config

import (
	"github.com/anssilaukkarinen/bfty/internal/timegrid"
	"github.com/anssilaukkarinen/bfty/internal/types"
	"github.com/anssilaukkarinen/bfty/pkg/envelope"
	"github.com/anssilaukkarinen/bfty/pkg/indoor"
)

// Output formats
const (
	FormatCSV      = "csv"
	FormatDelphin5 = "delphin5"
	FormatDelphin6 = "delphin6"
	FormatWUFI     = "wufi"
	FormatLWrad    = "lwrad"
	FormatParquet  = "parquet"
	FormatMsgpack  = "msgpack"
)

// KnownFormats lists every output format in export order.
var KnownFormats = []string{FormatCSV, FormatDelphin5, FormatDelphin6, FormatWUFI, FormatLWrad, FormatParquet, FormatMsgpack}

// DefaultFormats are written when no formats are configured.
func DefaultFormats() []string {
	return []string{FormatCSV, FormatDelphin5, FormatDelphin6, FormatWUFI, FormatLWrad}
}

// DefaultSites returns the Finnish test year stations.
func DefaultSites() []types.Site {
	return []types.Site{
		{Name: "jok", Latitude: 60.81, Longitude: 23.50, HeightAMSL: 104, TimeZone: 2.0, Title: "Jokioinen"},
		{Name: "van", Latitude: 60.33, Longitude: 24.96, HeightAMSL: 51, TimeZone: 2.0, Title: "Vantaa"},
	}
}

// Defaults returns a configuration with every optional setting filled in.
func Defaults() *ConfigData {
	return &ConfigData{
		InputDir: "input",
		Envelope: envelope.DefaultConfig(),
		Indoor: IndoorData{
			Window:      indoor.DefaultWindow,
			Temperature: indoor.DefaultTemperature,
		},
		Pipeline: PipelineData{
			Workers:       1,
			ReferenceYear: timegrid.DefaultReferenceYear,
		},
		Output: OutputData{
			Dir: "output",
		},
	}
}
