package buildinfo

// ProjectVersion is overridden at build time with -ldflags "-X".
var ProjectVersion = "dev"

const (
	ProjectName = "achievements-cli"
	GithubURL   = "https://github.com/bloops-games/achievements"
)

const Graffiti = `
               _     _                                     _
   __ _   ___ | |__ (_) ___ __   __ ___  _ __ ___    ___  _ __ | |_  ___
  / _' | / __|| '_ \| |/ _ \\ \ / // _ \| '_ ' _ \  / _ \| '_ \| __|/ __|
 | (_| || (__ | | | | |  __/ \ V /|  __/| | | | | ||  __/| | | | |_ \__ \
  \__,_| \___||_| |_|_|\___|  \_/  \___||_| |_| |_| \___||_| |_|\__||___/
`

// GreetingCLI takes the project name, version and repository url.
const GreetingCLI = "%s %s\n%s\nType help for the list of commands, exit to leave.\n\n"
