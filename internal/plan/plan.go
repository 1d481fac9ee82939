package plan

import "time"

// Kind selects which inputs the entry form shows for an exercise.
type Kind int

const (
	KindWeighted   Kind = iota // weight, reps per set, per-set checkboxes
	KindCompletion             // single "done" toggle
	KindCardio                 // minutes, speed, incline
)

func (k Kind) String() string {
	switch k {
	case KindCompletion:
		return "completion"
	case KindCardio:
		return "cardio"
	default:
		return "weighted"
	}
}

const (
	ChestPress   = "시티드 체스트 프레스"
	HighPulley   = "하이폴리"
	LongPull     = "롱풀"
	Somifit      = "소미핏"
	Running      = "러닝/걷기"
	LateralRaise = "사이드 레터럴 레이즈"
	Squat        = "스쿼트"
	LegPress     = "레그프레스"
	HipAdductor  = "힙 어덕터 & 어브덕터"
	Abdominal    = "업도미널"
	Other        = "기타" // catch-all; the form asks for a free-text name
)

// kinds maps exercise names to their non-default kind.
var kinds = map[string]Kind{
	Somifit: KindCompletion,
	Running: KindCardio,
}

// KindOf returns the input kind for an exercise name. Unknown names,
// including free-text "other" entries, are weighted.
func KindOf(name string) Kind {
	if k, ok := kinds[name]; ok {
		return k
	}
	return KindWeighted
}

type Routine struct {
	Name      string // "A" or "B"
	Label     string
	Color     string
	Exercises []string
}

// IndexOf returns the position of name in the routine.
func (r Routine) IndexOf(name string) (int, bool) {
	for i, e := range r.Exercises {
		if e == name {
			return i, true
		}
	}
	return 0, false
}

func (r Routine) Len() int { return len(r.Exercises) }

// RoutineA is used on Mon/Wed/Fri and weekends.
func RoutineA() Routine {
	return Routine{
		Name:  "A",
		Label: "💪 상체/전신 루틴 (월/수/금)",
		Color: "#1E90FF",
		Exercises: []string{
			ChestPress, HighPulley, LongPull, Somifit,
			Running, LateralRaise,
			Squat, LegPress, HipAdductor, Abdominal,
			Other,
		},
	}
}

// RoutineB front-loads lower-body work on Tue/Thu.
func RoutineB() Routine {
	return Routine{
		Name:  "B",
		Label: "🔥 하체 집중 루틴 (화/목)",
		Color: "#FF4B4B",
		Exercises: []string{
			Squat, LegPress, HipAdductor, Abdominal,
			Running,
			ChestPress, HighPulley, LongPull, Somifit, LateralRaise,
			Other,
		},
	}
}

// ForDate picks the routine for the weekday of d.
func ForDate(d time.Time) Routine {
	switch d.Weekday() {
	case time.Tuesday, time.Thursday:
		return RoutineB()
	default:
		return RoutineA()
	}
}

var weekdayLabels = [...]string{
	time.Monday:    "월",
	time.Tuesday:   "화",
	time.Wednesday: "수",
	time.Thursday:  "목",
	time.Friday:    "금",
	time.Saturday:  "토",
	time.Sunday:    "일",
}

// WeekdayLabel returns the single-character Korean weekday for d.
func WeekdayLabel(d time.Time) string {
	return weekdayLabels[d.Weekday()]
}

var videoLinks = map[string]string{
	ChestPress: "https://youtube.com/shorts/AKzdQPAEGMQ?si=MVTrPeUXfvs2aJR9",
	HighPulley: "https://youtube.com/shorts/5UPOD0he724?si=SahBffFfYiOmS-Vn",
	LongPull:   "https://youtube.com/shorts/t6edD5c7QWw?si=R0X5k8scgPocC-pv",
	Somifit:    "https://youtu.be/tZbTY9j_L9o?si=8kCxZvj8b3tZy_4J",
	Squat:      "https://youtu.be/urOSaROmTIk?si=rnS-BkOKbb4EGZc-",
	LegPress:   "https://youtube.com/shorts/FcHwWI2sulg?si=BQL8nCtplDJprZLa",
	Abdominal:  "https://youtube.com/shorts/6O0YQY8u-Io?si=mGkzGrR4L0jKi57N",
}

// VideoURL returns the form-check video for an exercise, if one is registered.
func VideoURL(name string) (string, bool) {
	u, ok := videoLinks[name]
	return u, ok
}
