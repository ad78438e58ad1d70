package weave

// Release version of the escrow node. GitCommit is set at build time with
//   -ldflags "-X github.com/iov-one/escrowd.GitCommit=$(git rev-parse --short HEAD)"
const release = "v0.1.0-dev"

var GitCommit = ""

// Version returns the release, followed by the commit when known.
func Version() string {
	if GitCommit == "" {
		return release
	}
	return release + " " + GitCommit
}
