// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads instance descriptors for the stumpsd CLI bootstrap
// from a YAML file (see §6, administrative contract — wrapped here, not
// reimplemented, by a thin CLI loader).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RecordingBehavior mirrors [stumps.RecordingBehavior] as a YAML-friendly
// string enum, so descriptor files stay readable by hand.
type RecordingBehavior string

const (
	RecordingBehaviorLeaveStumpsUnchanged         RecordingBehavior = "leave_stumps_unchanged"
	RecordingBehaviorDisableStumpsWhileRecording RecordingBehavior = "disable_stumps_while_recording"
)

// FallbackResponse mirrors [stumps.FallbackResponse] as a YAML-friendly
// string enum.
type FallbackResponse string

const (
	FallbackResponseNotFound           FallbackResponse = "not_found"
	FallbackResponseServiceUnavailable FallbackResponse = "service_unavailable"
)

// InstanceDescriptor is the on-disk shape of one instance's bootstrap
// configuration.
type InstanceDescriptor struct {
	ID                         string            `yaml:"id"`
	ExternalHostName           string            `yaml:"external_host_name"`
	UseSecureTransportUpstream bool              `yaml:"use_secure_transport_upstream"`
	ListeningPort              int               `yaml:"listening_port"`
	AutoStart                  bool              `yaml:"auto_start"`
	StumpsEnabled              bool              `yaml:"stumps_enabled"`
	RecordTraffic              bool              `yaml:"record_traffic"`
	RecordingBehavior          RecordingBehavior `yaml:"recording_behavior"`
	FallbackResponse           FallbackResponse  `yaml:"fallback_response"`
}

// Document is the root of a descriptor file: a flat list of instances.
type Document struct {
	Instances []InstanceDescriptor `yaml:"instances"`
}

// Load reads and parses an instance-descriptor document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &doc, nil
}
