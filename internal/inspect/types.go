package inspect

const (
	upstreamPolicySkipNameConstant     = "skip"
	upstreamPolicyUnpushedNameConstant = "unpushed"
)

// UpstreamPolicy names the classification applied to branches without a configured upstream.
type UpstreamPolicy string

// Supported upstream policies.
const (
	// UpstreamPolicySkip treats repositories without tracking branches as not applicable.
	UpstreamPolicySkip UpstreamPolicy = UpstreamPolicy(upstreamPolicySkipNameConstant)
	// UpstreamPolicyUnpushed treats repositories with commits but no tracking branches as unpushed.
	UpstreamPolicyUnpushed UpstreamPolicy = UpstreamPolicy(upstreamPolicyUnpushedNameConstant)
)

// RepositoryRecord captures the inspection outcome for a single repository.
type RepositoryRecord struct {
	Path             string
	Dirty            bool
	Unpushed         bool
	UnpushedBranches []string
	InspectionFailed bool
}
