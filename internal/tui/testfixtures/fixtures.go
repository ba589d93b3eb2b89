package testfixtures

// SampleAnswers is a complete, valid answer set.
func SampleAnswers() []string {
	return []string{
		"Fintech startup",
		"Go, Kubernetes",
		"Remote, full-time",
		"3+ years backend",
		"Build payment APIs",
	}
}

// SamplePosting is a generated posting as returned by the proxy.
const SamplePosting = "### Role\n- Build APIs"
