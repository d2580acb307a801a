/*
 * selection.go, part of trajio.
 *
 * Copyright 2024 The trajio Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package trajio

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIndices parses a list of 0-based atom indexes such as "0-9,12,20-22" (ranges are
// inclusive). The order of the string is kept, duplicates are an error.
func ParseIndices(s string) ([]int, error) {
	var ret []int
	seen := make(map[int]bool)
	add := func(i int) error {
		if seen[i] {
			return fmt.Errorf("atom %d given twice: %w", i, ErrInvalidArgument)
		}
		seen[i] = true
		ret = append(ret, i)
		return nil
	}
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(field, "-")
		first, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("bad atom index %q: %w", field, ErrInvalidArgument)
		}
		last := first
		if isRange {
			last, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("bad atom range %q: %w", field, ErrInvalidArgument)
			}
		}
		if first < 0 || last < first {
			return nil, fmt.Errorf("bad atom range %q: %w", field, ErrInvalidArgument)
		}
		for i := first; i <= last; i++ {
			if err := add(i); err != nil {
				return nil, err
			}
		}
	}
	return ret, nil
}

// Runs splits a list of atom indexes into runs of consecutive indexes. Each run is
// returned as {first index, length}. The order of atoms is kept, so {3,4,5,1,2}
// gives {{3,3},{1,2}}.
func Runs(atoms []int) [][2]int {
	var ret [][2]int
	for i := 0; i < len(atoms); {
		j := i + 1
		for j < len(atoms) && atoms[j] == atoms[j-1]+1 {
			j++
		}
		ret = append(ret, [2]int{atoms[i], j - i})
		i = j
	}
	return ret
}

// ParseRange parses a frame range written as start:stop:step, where any of the three
// numbers can be omitted (giving Unbounded) and start and stop can be negative, as in
// "10:", ":-5" or "::2". A single number selects that frame alone. The empty string
// selects every frame.
func ParseRange(s string) (start, stop, step int, err error) {
	s = strings.TrimSpace(s)
	start, stop, step = Unbounded, Unbounded, Unbounded
	if s == "" {
		return start, stop, step, nil
	}
	fields := strings.Split(s, ":")
	if len(fields) > 3 {
		return 0, 0, 0, fmt.Errorf("bad frame range %q: %w", s, ErrInvalidRange)
	}
	vals := []*int{&start, &stop, &step}
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("bad frame range %q: %w", s, ErrInvalidRange)
		}
		*vals[i] = v
	}
	if len(fields) == 1 {
		stop = start + 1
		if stop == 0 {
			stop = Unbounded
		}
		step = 1
	}
	return start, stop, step, nil
}
