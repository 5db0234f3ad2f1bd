package chapters

import "fmt"

// Prompt templates. Every prompt instructs the model to wrap each output
// field in the delimiters the tags package scans for; the tag vocabulary
// (topic, summary, section, ans, quiz, lvl, qn, choices, opt) never
// self-nests in well-formed output.

const overviewTemplate = `<transcript>
%s
</transcript>

You are given a video transcript above in <transcript></transcript> tags. Your task is to identify the key topics in the video and write a summary of the content.

For each topic in the key topics, output the topic within <topic></topic> tags. You must list the topics in the order in which they appear and include the intro and outro sections. Then, output the summary within <summary></summary> tags. The summary should be at most 250 words.

Below is an example of the expected output format.

<topic>
First Topic
</topic>

<topic>
Second Topic
</topic>

<summary>
This is a short summary of the transcript.
</summary>`

const sectionTemplate = `<transcript>
%s
</transcript>

You are given a video transcript and a topic. Your task is to analyze the transcript in <transcript></transcript> and find the section that is most relevant to the topic "%s". The section should be a continuous block from the transcript.

You are strictly required to use the original wording verbatim. Output the section within <section></section> tags.`

const membershipTemplate = `<transcript>
%s
</transcript>

You are given a full video transcript and a segment of text. Your task is to determine if the text segment is part of the video transcript or not. Minor variations are acceptable.

Determine if the video transcript given above in <transcript></transcript> tags contains the following text segment: %s

Output exactly one word, "yes" or "no", within <ans></ans> tags.`

const quizTemplate = `<chap>
%s
</chap>

Bloom's Taxonomy is a framework used in education to classify different levels of cognitive skills and learning objectives. The taxonomy is hierarchical and consists of six levels, arranged from the simplest to the most complex cognitive skills:
1) Remember (Knowledge): Recalling facts, terms, concepts, principles, or theories.
2) Understand (Comprehension): Demonstrating an understanding of the meaning of instructional materials.
3) Apply: Using learned materials in new and concrete situations.
4) Analyze: Breaking down information into its components to understand its organizational structure.
5) Evaluate: Making judgments or decisions based on criteria and standards.
6) Create (Synthesis): Putting elements together to form a coherent or functional whole; reorganizing elements into a new pattern or structure.

Your task is to generate one multiple choice quiz question for each level in Bloom's Taxonomy based on the content in <chap></chap>. The goal is to test a student's understanding of the topic.

Output each quiz question within <quiz></quiz> tags. Each question should contain the level description within <lvl></lvl> tags, the question text within <qn></qn> tags, a list of exactly four choices within <choices></choices> tags where each choice is encapsulated within <opt></opt> tags, and the correct answer within <ans></ans> tags.

Here is an example of the expected output format:
<quiz>
    <lvl>
    Remember (Knowledge)
    </lvl>

    <qn>
    The question text.
    </qn>

    <choices>
        <opt>
        Answer choice one
        </opt>

        <opt>
        Answer choice two
        </opt>

        <opt>
        Answer choice three
        </opt>

        <opt>
        Answer choice four
        </opt>
    </choices>

    <ans>
    Answer choice three
    </ans>
</quiz>`

const summaryTemplate = `<chap>
%s
</chap>

Summarize the text given in <chap></chap> tags using less than 200 words. Output your summary within <summary></summary> tags.`

func overviewPrompt(transcript string) string {
	return fmt.Sprintf(overviewTemplate, transcript)
}

func sectionPrompt(transcript, topic string) string {
	return fmt.Sprintf(sectionTemplate, transcript, topic)
}

func membershipPrompt(chapterText, segmentText string) string {
	return fmt.Sprintf(membershipTemplate, chapterText, segmentText)
}

func quizPrompt(title, transcript string) string {
	return fmt.Sprintf(quizTemplate, chapterText(title, transcript))
}

func summaryPrompt(title, transcript string) string {
	return fmt.Sprintf(summaryTemplate, chapterText(title, transcript))
}

func chapterText(title, transcript string) string {
	return fmt.Sprintf("Title: %s\n\n%s", title, transcript)
}
