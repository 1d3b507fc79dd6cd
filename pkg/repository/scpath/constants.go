package scpath

const (
	// SourceDir is the name of the metadata directory inside a working tree
	SourceDir = ".source"
	// ObjectsDir is the name of the objects directory
	ObjectsDir = "objects"
	// ConfigFile is the name of the config file
	ConfigFile = "config"
	// DescriptionFile is the name of the free-text repository description
	DescriptionFile = "description"
)

const (
	// keyHexLength is the length of a full object key in hex
	keyHexLength = 40
	// fanoutLength is the number of leading hex characters used as the directory name
	fanoutLength = 2
)
