package version

var (
	Version = "dev"
	Commit  = ""
)

func GetVersion() string {
	return Version
}

func GetCommit() string {
	return Commit
}
