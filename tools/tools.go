// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build tools

// Package tools pins the license header checker so `go mod tidy` keeps it
// in go.mod. Run it with:
//
//	go run github.com/google/addlicense -check -f LICENSE.header .
package tools

import (
	_ "github.com/google/addlicense"
)
