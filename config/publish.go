package config

// Publish configures the optional mirror of result files to object storage.
// Publishing is disabled when Bucket is empty.
type Publish struct {
	Bucket   string `yaml:"bucket,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"` // S3-compatible endpoint such as MinIO

	// Static credentials are read from these environment variables when set;
	// otherwise the default AWS credential chain applies.
	AccessKeyEnv string `yaml:"access_key_env,omitempty"`
	SecretKeyEnv string `yaml:"secret_key_env,omitempty"`
}

// Enabled reports whether a bucket is configured.
func (p Publish) Enabled() bool { return p.Bucket != "" }

func (p *Publish) applyDefaults() {
	if p.Region == "" {
		p.Region = "us-east-1"
	}
}
