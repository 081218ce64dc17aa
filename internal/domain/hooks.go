package domain

// LaunchHooks defines scripts run around a launch
type LaunchHooks struct {
	BeforeLaunch string `yaml:"before_launch"`
	AfterLaunch  string `yaml:"after_launch"`
}

// IsEmpty returns true if no hooks are configured
func (h LaunchHooks) IsEmpty() bool {
	return h.BeforeLaunch == "" && h.AfterLaunch == ""
}
