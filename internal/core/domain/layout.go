package domain

const (
	// DefinitionFileName is the name of the project definition file.
	DefinitionFileName = "nest.star"

	// NoFile is the source location recorded for a context without a definition file.
	NoFile = "nofile"

	// BuildDirName is the name of the default build directory.
	BuildDirName = "_build"

	// LibDirName is the directory under the build path holding one directory per application.
	LibDirName = "lib"

	// CompileDirName is the directory under the application path holding compiled artifacts.
	CompileDirName = "ebin"

	// PrivDirName is the name of the static assets directory linked into the build.
	PrivDirName = "priv"

	// EnvFileName is the dotenv file consulted for the build environment name.
	EnvFileName = ".env"

	// DefaultEnv is the build environment used when none is configured.
	DefaultEnv = "dev"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750
)
