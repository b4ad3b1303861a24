package main

import (
	"flag"
	"log"

	"github.com/dovahkit/perktree_editor/config"
	"github.com/dovahkit/perktree_editor/nif"
	"github.com/dovahkit/perktree_editor/perks"
	"github.com/dovahkit/perktree_editor/view"
	"github.com/dovahkit/perktree_editor/web"
)

func main() {
	var addr, scenePath, perksPath, cfgPath, encoding, skill string
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.StringVar(&scenePath, "scene", "", "Path to perk tree scene (glTF/glb)")
	flag.StringVar(&perksPath, "perks", "", "Path to perk records dump (yaml)")
	flag.StringVar(&cfgPath, "cfg", "", "Path to config override (yaml)")
	flag.StringVar(&encoding, "encoding", "", "Perk name encoding override (list: Windows 1250-1258)")
	flag.StringVar(&skill, "skill", "", "Skill tree to select on start")
	flag.Parse()

	if scenePath == "" || perksPath == "" {
		flag.PrintDefaults()
		return
	}

	if cfgPath != "" {
		if err := config.LoadFile(cfgPath); err != nil {
			log.Fatal(err)
		}
	}
	if encoding != "" {
		if err := config.SetEncoding(encoding); err != nil {
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
	if skill != "" {
		v.SelectSkill(skill)
	}

	if err := web.StartServer(addr, v, source, "web/data"); err != nil {
		log.Fatal(err)
	}
}
