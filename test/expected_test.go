// This file is part of Statecodec.
//
// Statecodec is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Statecodec is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Statecodec.  If not, see <https://www.gnu.org/licenses/>.

package test_test

import (
	"errors"
	"io"
	"testing"

	"github.com/jetsetilly/statecodec/test"
)

func TestExpectFailure(t *testing.T) {
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("test"))
}

func TestExpectSuccess(t *testing.T) {
	test.ExpectSuccess(t, true)
	var err error
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nil)
}

func TestExpectEquality(t *testing.T) {
	test.ExpectEquality(t, 10, 5+5)
	test.ExpectEquality(t, true, true)
	test.ExpectEquality(t, true, !false)
}

func TestExpectInequality(t *testing.T) {
	test.ExpectInequality(t, 11, 5+5)
	test.ExpectInequality(t, true, false)
}

func TestExpectApproximate(t *testing.T) {
	test.ExpectApproximate(t, 10, 11, 0.1)
}

func TestCompareWriter(t *testing.T) {
	tw := &test.CompareWriter{}
	test.ExpectSuccess(t, tw.Compare(""))
	_, _ = io.WriteString(tw, "foo")
	test.ExpectSuccess(t, tw.Compare("foo"))
	tw.Clear()
	test.ExpectSuccess(t, tw.Compare(""))
}

func TestCappedStream(t *testing.T) {
	_, err := test.NewCappedStream(0)
	test.ExpectFailure(t, err)

	s, err := test.NewCappedStream(4)
	test.DemandSuccess(t, err)

	// short write is not an error
	n, err := s.Write([]byte{1, 2, 3, 4, 5, 6})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 4)
	test.ExpectBytes(t, s.Bytes(), []byte{1, 2, 3, 4})

	// stream is full
	n, err = s.Write([]byte{7})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 0)

	// overwrite from the start
	pos, err := s.Seek(1, io.SeekStart)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pos, int64(1))
	_, _ = s.Write([]byte{9})
	test.ExpectBytes(t, s.Bytes(), []byte{1, 9, 3, 4})

	// read to the end
	b := make([]byte, 8)
	n, err = s.Read(b)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 2)
	_, err = s.Read(b)
	test.ExpectEquality(t, err, io.EOF)
}

func TestFailingStream(t *testing.T) {
	s := test.FailingStream{}
	_, err := s.Write([]byte{0})
	test.ExpectEquality(t, err, test.ErrFailingStream)
	_, err = s.Read(make([]byte, 1))
	test.ExpectEquality(t, err, test.ErrFailingStream)
}
