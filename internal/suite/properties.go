package suite

import (
	"randkit/internal/biz"
	"randkit/pkg/random"
)

const rangeDraws = 1_000_000

// propertySeeds 覆盖零、小整数与边界值
var propertySeeds = []uint32{0, 1, 42, 0x80000000, 0xffffffff}

// PropertiesModule 结构性质：确定性、值域、位提取、跳跃与状态恢复
func PropertiesModule(m *biz.M) {
	m.Declare("random.properties")

	m.Run(DeterminismTest)
	m.Run(FloatRangeTest)
	m.Run(DoubleRangeTest)
	m.Run(IntRangeTest)
	m.Run(BoolBitTest)
	m.Run(JumpTest)
	m.Run(StateRestoreTest)
}

// DeterminismTest 同一种子的两个实例逐位一致
func DeterminismTest(t *biz.T) {
	for _, seed := range propertySeeds {
		a, b := random.NewXoshiro128Plus(seed), random.NewXoshiro128Plus(seed)
		for i := 0; i < 10000; i++ {
			if x, y := a.Next(), b.Next(); x != y {
				t.Errorf("seed %d diverged at draw %d: %#08x != %#08x.", seed, i, x, y)
				break
			}
		}
	}
}

// FloatRangeTest RandFloat 的结果总在 [0,1) 内
func FloatRangeTest(t *biz.T) {
	for _, seed := range propertySeeds {
		rng := random.NewXoshiro128Plus(seed)
		for i := 0; i < rangeDraws; i++ {
			if f := rng.RandFloat(); f < 0 || f >= 1 {
				t.Errorf("seed %d draw %d: float %v outside [0,1).", seed, i, f)
				break
			}
		}
	}
}

// DoubleRangeTest RandDouble 的结果总在 [0,1) 内
func DoubleRangeTest(t *biz.T) {
	for _, seed := range propertySeeds {
		rng := random.NewXoshiro128Plus(seed)
		for i := 0; i < rangeDraws; i++ {
			if d := rng.RandDouble(); d < 0 || d >= 1 {
				t.Errorf("seed %d draw %d: double %v outside [0,1).", seed, i, d)
				break
			}
		}
	}
}

// IntRangeTest RandInt(a, b) 的结果总在 [a, b) 内，包括 float32 无法精确表示 a 的区间
func IntRangeTest(t *biz.T) {
	ranges := [][2]int{{0, 10}, {-5, 5}, {-100, -20}, {7, 8}, {0, 1 << 20}, {1<<24 + 1, 1<<24 + 11}}
	for _, r := range ranges {
		rng := random.NewXoshiro128Plus(uint32(r[1]))
		for i := 0; i < 100000; i++ {
			if v := rng.RandInt(r[0], r[1]); v < r[0] || v >= r[1] {
				t.Errorf("RandInt(%d, %d) = %d at draw %d.", r[0], r[1], v, i)
				break
			}
		}
	}
}

// BoolBitTest RandBool 必须与同一次 Next 的最高位为 0 完全一致
func BoolBitTest(t *biz.T) {
	for _, seed := range propertySeeds {
		a, b := random.NewXoshiro128Plus(seed), random.NewXoshiro128Plus(seed)
		for i := 0; i < 100000; i++ {
			if got, want := a.RandBool(), b.Next()>>31 == 0; got != want {
				t.Errorf("seed %d draw %d: RandBool() = %v, top bit says %v.", seed, i, got, want)
				break
			}
		}
	}
}

// JumpTest 跳跃结果确定，且与原序列、长跳跃结果都不相同
func JumpTest(t *biz.T) {
	base := random.NewXoshiro128Plus(0)
	j1, j2 := random.NewXoshiro128Plus(0), random.NewXoshiro128Plus(0)
	j1.Jump()
	j2.Jump()
	if j1.State() != j2.State() {
		t.Errorf("Jump is not deterministic: %x != %x.", j1.State(), j2.State())
	}
	if j1.State() == base.State() {
		t.Errorf("Jump left the state unchanged.")
	}

	lj := random.NewXoshiro128Plus(0)
	lj.LongJump()
	if lj.State() == j1.State() {
		t.Errorf("LongJump landed on the same state as Jump.")
	}
	if lj.State() == [4]uint32{} {
		t.Errorf("LongJump produced the all-zero state.")
	}
}

// StateRestoreTest 保存的快照可以续上原序列
func StateRestoreTest(t *biz.T) {
	rng := random.NewXoshiro128Plus(17)
	for i := 0; i < 100; i++ {
		rng.Next()
	}
	saved := rng.State()

	var resumed random.Xoshiro128Plus
	if err := resumed.SetState(saved); err != nil {
		t.Errorf("SetState failed: %v.", err)
		return
	}
	for i := 0; i < 100; i++ {
		if x, y := rng.Next(), resumed.Next(); x != y {
			t.Errorf("resumed stream diverged at draw %d: %#08x != %#08x.", i, x, y)
			return
		}
	}
	if err := resumed.SetState([4]uint32{}); err == nil {
		t.Errorf("SetState accepted the all-zero state.")
	}
}
