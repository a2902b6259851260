package rijndael

// state is the 4x4 byte matrix, s[row][col] = block[row+4*col].
type state [4][4]byte

func (s *state) load(in []byte) {
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			s[r][c] = in[r+4*c]
		}
	}
}

func (s *state) store(out []byte) {
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[r+4*c] = s[r][c]
		}
	}
}

// addRoundKey XORs column c with round-key word c, most significant byte
// into row 0.
func (s *state) addRoundKey(words []uint32) {
	for c := 0; c < 4; c++ {
		w := words[c]
		s[0][c] ^= byte(w >> 24)
		s[1][c] ^= byte(w >> 16)
		s[2][c] ^= byte(w >> 8)
		s[3][c] ^= byte(w)
	}
}

func (s *state) subBytes(box *[256]byte) {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r][c] = box[s[r][c]]
		}
	}
}

// shiftRows rotates row r left by r positions.
func (s *state) shiftRows() {
	for r := 1; r < 4; r++ {
		row := s[r]
		for c := 0; c < 4; c++ {
			s[r][c] = row[(c+r)%4]
		}
	}
}

func (s *state) invShiftRows() {
	for r := 1; r < 4; r++ {
		row := s[r]
		for c := 0; c < 4; c++ {
			s[r][c] = row[(c-r+4)%4]
		}
	}
}

func (s *state) mixColumns() {
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := s[0][c], s[1][c], s[2][c], s[3][c]
		s[0][c] = mul2[a0] ^ mul3[a1] ^ a2 ^ a3
		s[1][c] = a0 ^ mul2[a1] ^ mul3[a2] ^ a3
		s[2][c] = a0 ^ a1 ^ mul2[a2] ^ mul3[a3]
		s[3][c] = mul3[a0] ^ a1 ^ a2 ^ mul2[a3]
	}
}

func (s *state) invMixColumns() {
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := s[0][c], s[1][c], s[2][c], s[3][c]
		s[0][c] = mul14[a0] ^ mul11[a1] ^ mul13[a2] ^ mul9[a3]
		s[1][c] = mul9[a0] ^ mul14[a1] ^ mul11[a2] ^ mul13[a3]
		s[2][c] = mul13[a0] ^ mul9[a1] ^ mul14[a2] ^ mul11[a3]
		s[3][c] = mul11[a0] ^ mul13[a1] ^ mul9[a2] ^ mul14[a3]
	}
}
