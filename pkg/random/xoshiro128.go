package random

import (
	"errors"
	"math"
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// ErrZeroState 全零状态下 xoshiro128+ 永远只输出 0
var ErrZeroState = errors.New("random: all-zero generator state")

// seedMixRounds 种子扩展的迭代轮数（与 MT19937 初始化相同）
const seedMixRounds = 624

// 种子扩展后异或进四个状态字的常量，保证四个字互不相同
var seedMasks = [4]uint32{0x3954c094, 0x30a56abb, 0x1d311568, 0x39adfa64}

var (
	jumpPoly     = [4]uint32{0x8764000b, 0xf542d2d3, 0x6fa035c3, 0x77f2db5b}
	longJumpPoly = [4]uint32{0xb523952e, 0x0b6f099f, 0xccf5a0ef, 0x1c580662}
)

// Xoshiro128Plus 是 xoshiro128+ 1.0 伪随机数生成器
// 注意：不适用于加密场景，也不能在多个 goroutine 间共享
// 零值是未播种状态，使用前必须调用 Seed
type Xoshiro128Plus struct {
	s [4]uint32
}

// NewXoshiro128Plus 创建并播种一个生成器
func NewXoshiro128Plus(seed uint32) *Xoshiro128Plus {
	r := &Xoshiro128Plus{}
	r.Seed(seed)
	return r
}

// NewXoshiro128PlusString 使用字符串标签的哈希作为种子
func NewXoshiro128PlusString(label string) *Xoshiro128Plus {
	r := &Xoshiro128Plus{}
	r.SeedString(label)
	return r
}

// Seed 将 32 位种子扩展为 128 位状态
// 同一个种子总是得到同一个状态，种子为 0 时状态也不会全零
func (r *Xoshiro128Plus) Seed(seed uint32) {
	// Knuth TAOCP Vol2. 3rd Ed. P.106 的乘数
	for i := uint32(1); i < seedMixRounds; i++ {
		seed = 1812433253*(seed^(seed>>30)) + i
	}
	for i := range r.s {
		r.s[i] = seedMasks[i] ^ seed
	}
}

// SeedString 以 xxhash(label) 的低 32 位播种
func (r *Xoshiro128Plus) SeedString(label string) {
	r.Seed(uint32(xxhash.Sum64String(label)))
}

// State 返回当前状态的快照
func (r *Xoshiro128Plus) State() [4]uint32 {
	return r.s
}

// SetState 恢复之前保存的状态
func (r *Xoshiro128Plus) SetState(s [4]uint32) error {
	if s == [4]uint32{} {
		return ErrZeroState
	}
	r.s = s
	return nil
}

// Next 生成下一个 32 位随机数，这是唯一推进状态的操作
func (r *Xoshiro128Plus) Next() uint32 {
	s := &r.s
	result := s[0] + s[3]

	t := s[1] << 9

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t

	s[3] = bits.RotateLeft32(s[3], 11)

	return result
}

// Uint64 由两次 Next 拼成 64 位（高位在前），满足 math/rand/v2.Source
func (r *Xoshiro128Plus) Uint64() uint64 {
	hi := uint64(r.Next())
	return hi<<32 | uint64(r.Next())
}

// RandBool 返回 true 当且仅当 Next 的最高位为 0
// 低位线性复杂度较低，所以用符号位
func (r *Xoshiro128Plus) RandBool() bool {
	return r.Next()>>31 == 0
}

// RandFloat 返回 [0,1) 内的 float32，共 2^23 个等距取值
func (r *Xoshiro128Plus) RandFloat() float32 {
	return toFloat32(r.Next())
}

// RandDouble 返回 [0,1) 内的 float64
// 推进一次后直接把状态字 0、1 当作一个 64 位整数使用，
// 因此与前后相邻的 RandBool/RandFloat 调用并不独立
func (r *Xoshiro128Plus) RandDouble() float64 {
	r.Next()
	return toFloat64(uint64(r.s[1])<<32 | uint64(r.s[0]))
}

// RandInt 返回 [a, b) 内的整数，要求 b > a
// b <= a 时结果没有意义，但不会 panic
func (r *Xoshiro128Plus) RandInt(a, b int) int {
	return scaleInt(toFloat32(r.Next()), a, b)
}

// scaleInt 把 [0,1) 内的 f 线性映射到 [a, b)
// 向下取整，负区间也不会取到 b
// |a| 超过 2^24 时 float32(a) 不精确，结果只保证落在区间内
func scaleInt(f float32, a, b int) int {
	// 显式转换阻止编译器融合乘加，保证各平台结果一致
	scaled := float32(float32(b-a) * f)
	v := int(math.Floor(float64(float32(float32(a) + scaled))))
	// float32 舍入可能越界：7 + 0.99999988 == 8，float32(16777217) == 16777216
	if b > a {
		switch {
		case v >= b:
			v = b - 1
		case v < a:
			v = a
		}
	}
	return v
}

// Jump 等价于调用 2^64 次 Next，可用于生成 2^64 个互不重叠的子序列
func (r *Xoshiro128Plus) Jump() {
	r.jump(jumpPoly)
}

// LongJump 等价于调用 2^96 次 Next
// 可以得到 2^32 个起点，每个起点再用 Jump 切分
func (r *Xoshiro128Plus) LongJump() {
	r.jump(longJumpPoly)
}

func (r *Xoshiro128Plus) jump(poly [4]uint32) {
	var acc [4]uint32
	for _, word := range poly {
		for b := 0; b < 32; b++ {
			if word&(uint32(1)<<b) != 0 {
				acc[0] ^= r.s[0]
				acc[1] ^= r.s[1]
				acc[2] ^= r.s[2]
				acc[3] ^= r.s[3]
			}
			r.Next()
		}
	}
	r.s = acc
}

// toFloat32 把高 23 位注入到 [1,2) 的尾数中再减 1
func toFloat32(x uint32) float32 {
	return math.Float32frombits(0x7F<<23|x>>9) - 1
}

// toFloat64 把高 52 位注入到 [1,2) 的尾数中再减 1
func toFloat64(x uint64) float64 {
	return math.Float64frombits(0x3FF<<52|x>>12) - 1
}
