package view

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/dovahkit/perktree_editor/config"
	"github.com/dovahkit/perktree_editor/r3d"
)

// Camera placement is resolved once per scene load: position from the camera
// anchor, up derived from the two horizon anchors. The look-at target
// follows the selected skill anchor plus a user-adjustable offset.

func (v *View) setupCamera() {
	cfg := config.Get()

	position := mgl32.Vec3{}
	if n := v.scene.NodeByName(cfg.Anchors.Camera); n != nil {
		position = n.WorldPosition()
	} else {
		log.Printf("[view] camera anchor %q missing, camera placed at origin", cfg.Anchors.Camera)
	}

	v.camera = r3d.NewLookCamera(position, mgl32.Vec3{}, v.deriveUp())
	v.camera.FovDegrees = cfg.Camera.FovDegrees
	v.camera.Near = cfg.Camera.Near
	v.camera.Far = cfg.Camera.Far
	v.lookAtOffset = mgl32.Vec3(cfg.Camera.LookAtOffset)
	v.retarget()
}

// deriveUp crosses the normalized world positions of the two horizon
// anchors. Either one missing falls back to the canonical vertical axis.
func (v *View) deriveUp() mgl32.Vec3 {
	cfg := config.Get()

	right := v.scene.NodeByName(cfg.Anchors.Right)
	forward := v.scene.NodeByName(cfg.Anchors.Forward)
	if right == nil || forward == nil {
		log.Printf("[view] horizon anchors %q/%q incomplete, using vertical up",
			cfg.Anchors.Right, cfg.Anchors.Forward)
		return mgl32.Vec3{0, 1, 0}
	}

	return right.WorldPosition().Normalize().
		Cross(forward.WorldPosition().Normalize()).
		Normalize()
}

// retarget recomputes the look-at point from the cached anchor transform and
// the current offset.
func (v *View) retarget() {
	v.camera.Target = v.anchorWorld.Translation.Add(v.lookAtOffset)
	v.dirty = true
}

func (v *View) Camera() *r3d.LookCamera { return v.camera }

func (v *View) SetFov(degrees float32) {
	v.camera.FovDegrees = degrees
	v.dirty = true
}

func (v *View) SetClipPlanes(near, far float32) {
	v.camera.Near = near
	v.camera.Far = far
	v.dirty = true
}

func (v *View) SetLookAtOffset(offset mgl32.Vec3) {
	v.lookAtOffset = offset
	v.retarget()
}

func (v *View) LookAtOffset() mgl32.Vec3 { return v.lookAtOffset }

func (v *View) SetLookAtOffsetZ(z float32) {
	v.lookAtOffset[2] = z
	v.retarget()
}

// Intro swoop: on skill selection the look-at Z offset glides in through a
// short cubic track instead of snapping.

const introDuration = 1.5 // seconds

func (v *View) startIntro(targetZ float32) {
	v.introTrack = r3d.KeyTrack{
		{Time: 0, Value: targetZ + 120},
		{Time: introDuration * 0.6, Value: targetZ + 15},
		{Time: introDuration, Value: targetZ},
	}
	v.introStart = time.Now()
	v.introActive = true
}

// advanceIntro samples the swoop for the current frame time. The view stays
// dirty until the track finishes.
func (v *View) advanceIntro() {
	if !v.introActive {
		return
	}
	elapsed := float32(time.Since(v.introStart).Seconds())
	v.SetLookAtOffsetZ(v.introTrack.SampleCubic(elapsed))
	if elapsed >= introDuration {
		v.introActive = false
	}
}
