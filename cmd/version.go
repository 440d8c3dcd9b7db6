package cmd

// Version задается при сборке: -ldflags "-X github.com/alexei38/disk-cpu-load/cmd.version=1.0.0".
var version = "dev"

func GetVersion() string {
	return version
}
