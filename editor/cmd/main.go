package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/dovahkit/perktree_editor/config"
	"github.com/dovahkit/perktree_editor/editor"
	"github.com/dovahkit/perktree_editor/nif"
	"github.com/dovahkit/perktree_editor/perks"
	"github.com/dovahkit/perktree_editor/view"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var scenePath, perksPath, cfgPath, skill string
	flag.StringVar(&scenePath, "scene", "", "Path to perk tree scene (glTF/glb)")
	flag.StringVar(&perksPath, "perks", "", "Path to perk records dump (yaml)")
	flag.StringVar(&cfgPath, "cfg", "", "Path to config override (yaml)")
	flag.StringVar(&skill, "skill", "", "Skill tree to open")
	flag.Parse()

	if scenePath == "" || perksPath == "" || skill == "" {
		flag.PrintDefaults()
		return
	}

	if cfgPath != "" {
		if err := config.LoadFile(cfgPath); err != nil {
			log.Fatal(err)
		}
	}

	scene, err := nif.LoadGLTF(scenePath)
	if err != nil {
		log.Fatal(err)
	}

	source, err := perks.LoadDump(perksPath)
	if err != nil {
		log.Fatal(err)
	}

	v := view.New(scene, source)
	v.SelectSkill(skill)

	e, err := editor.New(v, 1280, 800, "perktree editor")
	if err != nil {
		log.Fatal(err)
	}
	defer e.Destroy()

	e.Run()
}
