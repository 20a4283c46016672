package notify

// BannerNotice is one recorded banner.
type BannerNotice struct {
	Text       string
	DurationMs float64
}

// Recorder keeps every notice in memory. Tests use it as the UI fake.
type Recorder struct {
	Hearts   [][2]int
	Banners  []BannerNotice
	Flashes  []string
	Pause    []bool
	Impacts  [][2]float64
	Opponent []int
	Scenes   []string
}

func (r *Recorder) HeartsChanged(hearts, maxHearts int) {
	r.Hearts = append(r.Hearts, [2]int{hearts, maxHearts})
}

func (r *Recorder) Banner(text string, durationMs float64) {
	r.Banners = append(r.Banners, BannerNotice{Text: text, DurationMs: durationMs})
}

func (r *Recorder) CheckpointFlash(id string) {
	r.Flashes = append(r.Flashes, id)
}

func (r *Recorder) PauseVisible(visible bool) {
	r.Pause = append(r.Pause, visible)
}

func (r *Recorder) Impact(x, y float64) {
	r.Impacts = append(r.Impacts, [2]float64{x, y})
}

func (r *Recorder) OpponentHealth(health int, _ string) {
	r.Opponent = append(r.Opponent, health)
}

func (r *Recorder) SceneChanged(name string) {
	r.Scenes = append(r.Scenes, name)
}

// LastBanner returns the most recent banner text, or "".
func (r *Recorder) LastBanner() string {
	if len(r.Banners) == 0 {
		return ""
	}
	return r.Banners[len(r.Banners)-1].Text
}
