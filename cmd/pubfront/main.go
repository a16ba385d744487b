package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "build":
		err = runBuild(os.Args[2:])
	case "version":
		fmt.Printf("pubfront %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pubfront - the reading side of a blog: tag-filtered post lists and post pages

Usage:
  pubfront <command> [flags]

Commands:
  serve         Serve the site over HTTP
  build         Render the site into a static directory
  version       Print the pubfront version
  help          Show this help message

Flags:
  -config FILE  YAML configuration file (default $PUBFRONT_CONFIG)
  -out DIR      Output directory for build (default from config, "out")

Environment overrides:
  SITE_NAME, SITE_URL, SITE_DESCRIPTION, SITE_AUTHOR, SITE_LOCALE,
  DATABASE_PATH, TAG_API_URL, ADDR, POSTS_PER_PAGE, COMMENTS

Examples:
  pubfront serve -config site.yaml
  TAG_API_URL=https://api.example.com pubfront build -out dist`)
}
