// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-acme-cse/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	return renderPage("ABOUT CSETREE", strings.Join(info.Lines(), "\n"), "esc: back")
}
