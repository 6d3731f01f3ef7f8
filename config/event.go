package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EventSchedule holds the fixed slot, room and mentor tables for the event.
// These are configuration constants: slots are never created or destroyed at
// runtime, and the booking services treat them as an opaque ordered enumeration.
type EventSchedule struct {
	PrelimRooms []string
	PrelimSlots []string

	MentorNames   []string
	MentorRoomMap map[string]string

	RobotRooms []string

	FridaySlots   []string
	SaturdaySlots []string

	MaxMentorBookings int
	MaxRobotBookings  int
}

// SessionSlots returns the full ordered Friday+Saturday slot list used by
// mentor and robot bookings.
func (s EventSchedule) SessionSlots() []string {
	all := make([]string, 0, len(s.FridaySlots)+len(s.SaturdaySlots))
	all = append(all, s.FridaySlots...)
	all = append(all, s.SaturdaySlots...)
	return all
}

// MentorRooms returns the distinct rooms mentors are stationed in, in first
// appearance order.
func (s EventSchedule) MentorRooms() []string {
	seen := make(map[string]bool)
	var rooms []string
	for _, m := range s.MentorNames {
		room := s.MentorRoomMap[m]
		if room != "" && !seen[room] {
			seen[room] = true
			rooms = append(rooms, room)
		}
	}
	return rooms
}

// MentorsInRoom returns the mentors stationed in the given room, preserving
// the order of MentorNames. Auto-assignment is first-fit over this order.
func (s EventSchedule) MentorsInRoom(room string) []string {
	var mentors []string
	for _, m := range s.MentorNames {
		if s.MentorRoomMap[m] == room {
			mentors = append(mentors, m)
		}
	}
	return mentors
}

// Schedule is the active event schedule, populated by LoadEventSchedule.
var Schedule EventSchedule

// LoadEventSchedule fills Schedule from viper, defaulting to the published
// event timetable. UPDATE the mentor names and room assignments in config.yaml
// before the event.
func LoadEventSchedule() {
	viper.SetDefault("PRELIM_ROOMS", []string{"N200", "N217", "N300A"})
	viper.SetDefault("PRELIM_SLOTS", []string{
		"2:00 PM – 2:10 PM",
		"2:10 PM – 2:20 PM",
		"2:20 PM – 2:30 PM",
		"2:30 PM – 2:40 PM",
		"2:40 PM – 2:50 PM",
		"2:50 PM – 3:00 PM",
		"3:00 PM – 3:10 PM",
		"3:10 PM – 3:20 PM",
		"3:20 PM – 3:30 PM",
	})
	// Each entry is "mentor=room". Viper lowercases map keys, so the
	// stations are kept as ordered pairs and parsed below.
	viper.SetDefault("MENTOR_STATIONS", []string{
		"Mentor 1=N200",
		"Mentor 2=N200",
		"Mentor 3=N217",
		"Mentor 4=N217",
		"Mentor 5=N300A",
		"Mentor 6=N300A",
		"Mentor 7=N300A",
	})
	// One robot per room, so the room name is the robot identifier.
	viper.SetDefault("ROBOT_ROOMS", []string{"N200", "N217", "N300A"})
	viper.SetDefault("FRIDAY_SLOTS", []string{
		"Fri Mar 6 · 6:20 – 6:40 PM",
		"Fri Mar 6 · 6:40 – 7:00 PM",
		"Fri Mar 6 · 7:00 – 7:20 PM",
		"Fri Mar 6 · 7:20 – 7:40 PM",
		"Fri Mar 6 · 7:40 – 8:00 PM",
	})
	viper.SetDefault("SATURDAY_SLOTS", []string{
		"Sat Mar 7 · 10:00 – 10:20 AM",
		"Sat Mar 7 · 10:20 – 10:40 AM",
		"Sat Mar 7 · 10:40 – 11:00 AM",
		"Sat Mar 7 · 11:00 – 11:20 AM",
		"Sat Mar 7 · 11:20 – 11:40 AM",
		"Sat Mar 7 · 11:40 AM – 12:00 PM",
		"Sat Mar 7 · 12:00 – 12:20 PM",
		"Sat Mar 7 · 12:20 – 12:40 PM",
		"Sat Mar 7 · 12:40 –  1:00 PM",
		"Sat Mar 7 ·  1:00 –  1:20 PM",
	})
	viper.SetDefault("MAX_MENTOR_BOOKINGS", 2)
	viper.SetDefault("MAX_ROBOT_BOOKINGS", 2)

	mentorNames, mentorRooms := parseStations(viper.GetStringSlice("MENTOR_STATIONS"))

	Schedule = EventSchedule{
		PrelimRooms:       viper.GetStringSlice("PRELIM_ROOMS"),
		PrelimSlots:       viper.GetStringSlice("PRELIM_SLOTS"),
		MentorNames:       mentorNames,
		MentorRoomMap:     mentorRooms,
		RobotRooms:        viper.GetStringSlice("ROBOT_ROOMS"),
		FridaySlots:       viper.GetStringSlice("FRIDAY_SLOTS"),
		SaturdaySlots:     viper.GetStringSlice("SATURDAY_SLOTS"),
		MaxMentorBookings: viper.GetInt("MAX_MENTOR_BOOKINGS"),
		MaxRobotBookings:  viper.GetInt("MAX_ROBOT_BOOKINGS"),
	}
}

func parseStations(entries []string) ([]string, map[string]string) {
	names := make([]string, 0, len(entries))
	rooms := make(map[string]string, len(entries))
	for _, entry := range entries {
		name, room, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		names = append(names, name)
		rooms[name] = room
	}
	return names, rooms
}
