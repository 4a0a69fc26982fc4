// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"runtime"
	"runtime/debug"
	"strings"
)

// buildVersion is injected at build time via -ldflags.
var buildVersion string

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Go      string `json:"go"`
	GOOS    string `json:"goos"`
	GOARCH  string `json:"goarch"`
}

func getVersionInfo() versionInfo {
	info := versionInfo{
		Version: strings.TrimSpace(buildVersion),
		Commit:  "unknown",
		Go:      runtime.Version(),
		GOOS:    runtime.GOOS,
		GOARCH:  runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.Commit = commitFromSettings(bi.Settings)
	}
	if info.Version == "" {
		info.Version = info.Commit
	}
	return info
}

// commitFromSettings returns the short VCS revision, "+dirty" when the tree
// was modified, or "dev" when the binary was not built from a checkout.
func commitFromSettings(settings []debug.BuildSetting) string {
	var commit string
	var dirty bool
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if commit == "" {
		return "dev"
	}
	commit = commit[:min(len(commit), 9)]
	if dirty {
		commit += "+dirty"
	}
	return commit
}
