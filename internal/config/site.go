package config

// SiteConfig holds site-specific configuration for a single site.
// This allows tuning the audit per site without CLI flag sprawl.
type SiteConfig struct {
	// Skip excludes the site from the audit entirely.
	Skip bool `yaml:"skip,omitempty"`

	// TopExamples overrides the global ranked-example bound for this
	// site. If zero, the global value is used.
	TopExamples int `yaml:"topExamples,omitempty"`
}

// File represents the structure of the .contrastscan configuration file.
type File struct {
	// Sites maps site names to their site-specific configurations.
	// Keys should match the site names in the scan document.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains default site configuration applied to all sites
	// unless overridden in the site-specific configuration.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for a specific site.
// It merges the site-specific configuration with defaults.
func (cf *File) GetSiteConfig(site string) SiteConfig {
	result := cf.Defaults

	if siteConfig, ok := cf.Sites[site]; ok {
		if siteConfig.Skip {
			result.Skip = true
		}
		if siteConfig.TopExamples != 0 {
			result.TopExamples = siteConfig.TopExamples
		}
	}

	return result
}
