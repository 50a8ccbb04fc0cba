// Package config reads nestroute.json, the optional project configuration
// of the nestroute generator.
//
// The file is discovered by walking up from the working directory. Without
// one, the generator runs on the directories given on the command line with
// default settings.
//
// # Configuration File Structure
//
//	{
//	  "packages": ["internal/pages", "internal/admin/pages"],
//	  "suffix": "_target.go",
//	  "exclude": ["*_gen.go"]
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, dir := range cfg.PackageDirs() {
//	    fmt.Println(dir)
//	}
package config
