package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/anssilaukkarinen/bfty/internal/timegrid"
	"github.com/anssilaukkarinen/bfty/internal/types"
)

var (
	// ErrUnknownSite is returned when a dataset name matches no site.
	ErrUnknownSite = errors.New("config: dataset matches no known site")
	// ErrInvalid wraps all other validation failures.
	ErrInvalid = errors.New("config: invalid configuration")
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// Validate checks the whole configuration and reports every problem found.
func (c *ConfigData) Validate() error {
	var result *multierror.Error

	if len(c.Datasets) == 0 {
		result = multierror.Append(result, fmt.Errorf("%w: no datasets", ErrInvalid))
	}

	seen := make(map[string]bool)
	for _, d := range c.Datasets {
		if d.Name == "" || d.File == "" {
			result = multierror.Append(result, fmt.Errorf("%w: dataset needs a name and a file: %+v", ErrInvalid, d))
			continue
		}
		if seen[d.Name] {
			result = multierror.Append(result, fmt.Errorf("%w: duplicate dataset %q", ErrInvalid, d.Name))
		}
		seen[d.Name] = true

		if _, err := ResolveSite(c.Sites, d.Name); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := c.Envelope.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	if c.Indoor.Window < 1 {
		result = multierror.Append(result, fmt.Errorf("%w: indoor window must be at least 1 h, got %d", ErrInvalid, c.Indoor.Window))
	}
	if c.Pipeline.Workers < 1 {
		result = multierror.Append(result, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Pipeline.Workers))
	}
	if _, err := timegrid.New(c.Pipeline.ReferenceYear); err != nil {
		result = multierror.Append(result, err)
	}

	for _, f := range c.Output.Formats {
		if !slices.Contains(KnownFormats, f) {
			result = multierror.Append(result, fmt.Errorf("%w: unknown output format %q", ErrInvalid, f))
		}
	}

	return result.ErrorOrNil()
}

// ResolveSite finds the site whose name is a substring of the dataset name.
func ResolveSite(sites []types.Site, dataset string) (types.Site, error) {
	for _, s := range sites {
		if s.Name != "" && strings.Contains(dataset, s.Name) {
			return s, nil
		}
	}
	return types.Site{}, fmt.Errorf("%w: %q", ErrUnknownSite, dataset)
}

// TitleFor returns the dataset title, built from the site title and the year in
// the dataset name when none is configured.
func (d DatasetData) TitleFor(site types.Site) string {
	if d.Title != "" {
		return d.Title
	}
	if year := yearPattern.FindString(d.Name); year != "" && site.Title != "" {
		return site.Title + " " + year
	}
	return d.Name
}

// HasFormat reports whether an output format is enabled.
func (o OutputData) HasFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}
