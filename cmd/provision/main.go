package main

import (
	"github.com/MKhiriev/go-acme-cse/internal/cli"
	"github.com/MKhiriev/go-acme-cse/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cli.Execute(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
}
